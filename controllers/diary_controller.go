package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SeongukCho/SeSAC-Diary/config"
	"github.com/SeongukCho/SeSAC-Diary/middleware"
	"github.com/SeongukCho/SeSAC-Diary/models"
	"github.com/SeongukCho/SeSAC-Diary/services"
)

// DiaryController owns diary CRUD and the visibility rules around it.
type DiaryController struct {
	db         *gorm.DB
	classifier services.Classifier
	storage    *services.Storage
}

func NewDiaryController(db *gorm.DB, classifier services.Classifier, storage *services.Storage) *DiaryController {
	return &DiaryController{db: db, classifier: classifier, storage: storage}
}

// diaryRow is a diary joined with its owner's username.
type diaryRow struct {
	ID        uint
	Title     string
	Content   string
	Image     string
	IsPublic  bool
	Emotion   *string
	CreatedAt time.Time
	UserID    *uint
	Username  *string
}

func (r *diaryRow) toResponse() models.DiaryResponse {
	name := ""
	if r.Username != nil {
		name = *r.Username
	}
	d := models.Diary{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Image:     r.Image,
		IsPublic:  r.IsPublic,
		Emotion:   r.Emotion,
		CreatedAt: r.CreatedAt,
		UserID:    r.UserID,
	}
	return models.NewDiaryResponse(&d, name)
}

// List returns the diaries visible to the caller, newest first.
//
// With an explicit `public` filter: public=true lists all public rows for
// anyone; public=false is restricted to the caller's own private rows and
// requires authentication. Without a filter, an authenticated caller sees
// their own rows plus everything public, an anonymous caller only the
// public ones.
func (dc *DiaryController) List(c *gin.Context) {
	uid, authed := middleware.CurrentUserID(c)

	q := dc.db.Table("diaries").
		Select("diaries.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = diaries.user_id").
		Order("diaries.created_at DESC, diaries.id DESC")

	if raw, hasFilter := c.GetQuery("public"); hasFilter {
		wantPublic, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid public filter"})
			return
		}
		if wantPublic {
			q = q.Where("diaries.is_public = ?", true)
		} else {
			if !authed {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required for private listing"})
				return
			}
			q = q.Where("diaries.user_id = ? AND diaries.is_public = ?", uid, false)
		}
	} else if authed {
		q = q.Where("diaries.user_id = ? OR diaries.is_public = ?", uid, true)
	} else {
		q = q.Where("diaries.is_public = ?", true)
	}

	var rows []diaryRow
	if err := q.Scan(&rows).Error; err != nil {
		config.Logger.Errorw("diary listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list diaries"})
		return
	}

	out := make([]models.DiaryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toResponse())
	}

	c.JSON(http.StatusOK, out)
}

// Get returns one diary. Private entries are only readable by their owner.
func (dc *DiaryController) Get(c *gin.Context) {
	diary, ok := dc.fetchVisible(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.NewDiaryResponse(diary, dc.ownerName(diary)))
}

// Create stores a new diary owned by the caller and tags its content with
// an emotion label. A classifier failure is logged and leaves the tag
// empty; the create still succeeds.
func (dc *DiaryController) Create(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req models.CreateDiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diary := models.Diary{
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
		IsPublic: req.IsPublic,
		UserID:   &uid, // owner is always the caller, whatever the payload says
	}

	if err := dc.db.Create(&diary).Error; err != nil {
		config.Logger.Errorw("diary create failed", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create diary"})
		return
	}

	if label, ok := dc.classify(c, diary.Content); ok {
		if err := dc.db.Model(&diary).Update("emotion", label).Error; err != nil {
			config.Logger.Errorw("emotion tag save failed", "error", err, "diaryID", diary.ID)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "diary created",
		"diary":   models.NewDiaryResponse(&diary, dc.ownerName(&diary)),
	})
}

// Update applies the fields present in the request to the caller's diary.
// A content change triggers emotion re-classification; if that fails the
// previous tag is kept.
func (dc *DiaryController) Update(c *gin.Context) {
	diary, ok := dc.fetchOwned(c)
	if !ok {
		return
	}

	var req models.UpdateDiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
		if label, ok := dc.classify(c, *req.Content); ok {
			updates["emotion"] = label
		}
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if len(updates) > 0 {
		if err := dc.db.Model(diary).Updates(updates).Error; err != nil {
			config.Logger.Errorw("diary update failed", "error", err, "diaryID", diary.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update diary"})
			return
		}
		// reload so the response reflects exactly what was persisted
		if err := dc.db.First(diary, diary.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load diary"})
			return
		}
	}

	c.JSON(http.StatusOK, models.NewDiaryResponse(diary, dc.ownerName(diary)))
}

// Delete removes one of the caller's diaries.
func (dc *DiaryController) Delete(c *gin.Context) {
	diary, ok := dc.fetchOwned(c)
	if !ok {
		return
	}

	if err := dc.db.Delete(diary).Error; err != nil {
		config.Logger.Errorw("diary delete failed", "error", err, "diaryID", diary.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete diary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "diary deleted"})
}

// DeleteAll removes every diary owned by the caller.
func (dc *DiaryController) DeleteAll(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	res := dc.db.Where("user_id = ?", uid).Delete(&models.Diary{})
	if res.Error != nil {
		config.Logger.Errorw("bulk diary delete failed", "error", res.Error, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete diaries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "diaries deleted",
		"deleted": res.RowsAffected,
	})
}

// Download streams the stored image of a diary the caller may read.
func (dc *DiaryController) Download(c *gin.Context) {
	diary, ok := dc.fetchVisible(c)
	if !ok {
		return
	}

	if diary.Image == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "diary has no stored file"})
		return
	}

	body, length, contentType, err := dc.storage.Download(c.Request.Context(), diary.Image)
	if err != nil {
		config.Logger.Errorw("object download failed", "error", err, "diaryID", diary.ID, "key", diary.Image)
		c.JSON(http.StatusNotFound, gin.H{"error": "stored file not found"})
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, length, contentType, body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", diary.Image),
	})
}

// fetchVisible loads the diary from the :id param and applies the
// single-item visibility rule, writing the error response itself when the
// diary is missing or not readable.
func (dc *DiaryController) fetchVisible(c *gin.Context) (*models.Diary, bool) {
	diary, ok := dc.fetchByID(c)
	if !ok {
		return nil, false
	}

	if !diary.IsPublic {
		uid, authed := middleware.CurrentUserID(c)
		if !authed || diary.UserID == nil || *diary.UserID != uid {
			c.JSON(http.StatusForbidden, gin.H{"error": "this diary is private"})
			return nil, false
		}
	}

	return diary, true
}

// fetchOwned loads the diary and requires the caller to be its owner.
func (dc *DiaryController) fetchOwned(c *gin.Context) (*models.Diary, bool) {
	uid, authed := middleware.CurrentUserID(c)
	if !authed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}

	diary, ok := dc.fetchByID(c)
	if !ok {
		return nil, false
	}

	if diary.UserID == nil || *diary.UserID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this diary"})
		return nil, false
	}

	return diary, true
}

func (dc *DiaryController) fetchByID(c *gin.Context) (*models.Diary, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "diary not found"})
		return nil, false
	}

	var diary models.Diary
	if err := dc.db.First(&diary, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "diary not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load diary"})
		}
		return nil, false
	}

	return &diary, true
}

// classify runs the emotion classifier; a failure is logged, not surfaced.
func (dc *DiaryController) classify(c *gin.Context, content string) (string, bool) {
	if dc.classifier == nil {
		return "", false
	}
	label, err := dc.classifier.Classify(c.Request.Context(), content)
	if err != nil {
		config.Logger.Warnw("emotion classification failed", "error", err)
		return "", false
	}
	return label, true
}

func (dc *DiaryController) ownerName(d *models.Diary) string {
	if d.UserID == nil {
		return ""
	}
	var user models.User
	if err := dc.db.First(&user, *d.UserID).Error; err != nil {
		return ""
	}
	return user.GetDisplayName()
}
