package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SeongukCho/SeSAC-Diary/config"
	"github.com/SeongukCho/SeSAC-Diary/services"
	"github.com/SeongukCho/SeSAC-Diary/utils"
)

// StorageController issues presigned object-storage URLs so uploads and
// downloads bypass this service.
type StorageController struct {
	storage *services.Storage
}

func NewStorageController(storage *services.Storage) *StorageController {
	return &StorageController{storage: storage}
}

// GetPresignedURL returns a PUT URL for a fresh object key. The file_type
// query parameter carries the upload's file extension.
func (sc *StorageController) GetPresignedURL(c *gin.Context) {
	key := utils.GenerateObjectKey(c.Query("file_type"))

	url, err := sc.storage.PresignUpload(c.Request.Context(), key)
	if err != nil {
		config.Logger.Errorw("presign upload failed", "error", err, "key", key)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create upload url"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": url,
		"key":        key,
	})
}

// GetDownloadURL returns a GET URL for an existing object key.
func (sc *StorageController) GetDownloadURL(c *gin.Context) {
	key := c.Query("file_key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_key is required"})
		return
	}

	url, err := sc.storage.PresignDownload(c.Request.Context(), key)
	if err != nil {
		config.Logger.Errorw("presign download failed", "error", err, "key", key)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create download url"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": url})
}
