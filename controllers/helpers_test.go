package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SeongukCho/SeSAC-Diary/config"
	"github.com/SeongukCho/SeSAC-Diary/middleware"
	"github.com/SeongukCho/SeSAC-Diary/models"
	"github.com/SeongukCho/SeSAC-Diary/routes"
	"github.com/SeongukCho/SeSAC-Diary/services"
	"github.com/SeongukCho/SeSAC-Diary/utils"
)

// stubClassifier satisfies services.Classifier without network calls.
type stubClassifier struct {
	label string
	err   error
	calls int
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.label, nil
}

var _ services.Classifier = (*stubClassifier)(nil)

// setupServer builds a router backed by a fresh in-memory database.
func setupServer(t *testing.T, classifier services.Classifier) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop().Sugar()
	utils.InitJWT("test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Diary{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	routes.RegisterRoutes(r, db, classifier, nil, config.Config{FrontendURL: "http://localhost:5173"})
	return r, db
}

func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, r *gin.Engine, email, password, username string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/users/signup", models.SignUpRequest{
		Email:    email,
		Password: password,
		Username: username,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d (%s)", email, w.Code, w.Body.String())
	}
}

// signIn performs the form-encoded signin and returns the session token.
func signIn(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/users/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("signin %s: expected 200, got %d (%s)", email, w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie && c.Value != "" {
			return c.Value
		}
	}
	t.Fatalf("signin %s: no access_token cookie set", email)
	return ""
}

// newUser signs a user up and in, returning their session token.
func newUser(t *testing.T, r *gin.Engine, email, password, username string) string {
	t.Helper()
	signUp(t, r, email, password, username)
	return signIn(t, r, email, password)
}

func listDiaries(t *testing.T, r *gin.Engine, path, token string) []models.DiaryResponse {
	t.Helper()
	w := doJSON(r, http.MethodGet, path, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list %s: expected 200, got %d (%s)", path, w.Code, w.Body.String())
	}
	var out []models.DiaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("list %s: decode: %v", path, err)
	}
	return out
}

func diaryIDs(diaries []models.DiaryResponse) []uint {
	ids := make([]uint, 0, len(diaries))
	for _, d := range diaries {
		ids = append(ids, d.ID)
	}
	return ids
}

func containsID(diaries []models.DiaryResponse, id uint) bool {
	for _, d := range diaries {
		if d.ID == id {
			return true
		}
	}
	return false
}

// createDiary posts a new entry and returns its id.
func createDiary(t *testing.T, r *gin.Engine, token, title, content string, public bool) uint {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/", models.CreateDiaryRequest{
		Title:    title,
		Content:  content,
		IsPublic: public,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create diary %q: expected 201, got %d (%s)", title, w.Code, w.Body.String())
	}
	var resp struct {
		Diary models.DiaryResponse `json:"diary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("create diary %q: decode: %v", title, err)
	}
	return resp.Diary.ID
}
