package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/SeongukCho/SeSAC-Diary/middleware"
	"github.com/SeongukCho/SeSAC-Diary/models"
)

func TestSignUpSignInScenario(t *testing.T) {
	r, _ := setupServer(t, &stubClassifier{label: "neutral"})

	signUp(t, r, "a@x.com", "p1", "alice")

	// same email again
	w := doJSON(r, http.MethodPost, "/users/signup", models.SignUpRequest{
		Email:    "a@x.com",
		Password: "p2",
		Username: "alice2",
	}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate email: expected 409, got %d", w.Code)
	}

	// same username, fresh email
	w = doJSON(r, http.MethodPost, "/users/signup", models.SignUpRequest{
		Email:    "b@x.com",
		Password: "p2",
		Username: "alice",
	}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate username: expected 409, got %d", w.Code)
	}

	// correct credentials issue a cookie
	signIn(t, r, "a@x.com", "p1")

	// wrong password
	form := url.Values{"username": {"a@x.com"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/users/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", rec.Code)
	}

	// unknown user
	form = url.Values{"username": {"nobody@x.com"}, "password": {"p1"}}
	req = httptest.NewRequest(http.MethodPost, "/users/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user: expected 404, got %d", rec.Code)
	}
}

func TestMe(t *testing.T) {
	r, _ := setupServer(t, &stubClassifier{label: "neutral"})
	token := newUser(t, r, "a@x.com", "p1", "alice")

	w := doJSON(r, http.MethodGet, "/users/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `"email":"a@x.com"`) {
		t.Errorf("me: expected email in body, got %s", body)
	}
	if body := w.Body.String(); strings.Contains(body, "p1") || strings.Contains(body, "password") {
		t.Errorf("me: password material leaked: %s", w.Body.String())
	}

	if w := doJSON(r, http.MethodGet, "/users/me", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("me without cookie: expected 401, got %d", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	r, _ := setupServer(t, &stubClassifier{label: "neutral"})
	token := newUser(t, r, "a@x.com", "p1", "alice")

	w := doJSON(r, http.MethodPost, "/users/logout", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout did not clear the access_token cookie")
	}

	// no revocation: the token itself stays valid until expiry
	if w := doJSON(r, http.MethodGet, "/users/me", nil, token); w.Code != http.StatusOK {
		t.Errorf("replayed token after logout: expected 200, got %d", w.Code)
	}
}

func TestAvailabilityProbes(t *testing.T) {
	r, _ := setupServer(t, &stubClassifier{label: "neutral"})
	signUp(t, r, "a@x.com", "p1", "alice")

	cases := []struct {
		path string
		want int
	}{
		{"/users/checkemail/a@x.com", http.StatusConflict},
		{"/users/checkemail/free@x.com", http.StatusOK},
		{"/users/checkusername/alice", http.StatusConflict},
		{"/users/checkusername/bob", http.StatusOK},
	}
	for _, tc := range cases {
		if w := doJSON(r, http.MethodGet, tc.path, nil, ""); w.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.path, tc.want, w.Code)
		}
	}
}
