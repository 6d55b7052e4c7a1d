// Package upload 提供食譜圖片上傳端點。
package upload

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-manager/internal/core/image"
	"recipe-manager/internal/pkg/common"
)

// Uploader 圖片儲存介面
type Uploader interface {
	UploadRecipeImage(ctx context.Context, filename string, mediaType string, data []byte) (string, error)
}

// Handler 上傳處理器
type Handler struct {
	validator *image.Service
	uploader  Uploader
}

// NewHandler 創建上傳處理器
func NewHandler(validator *image.Service, uploader Uploader) *Handler {
	return &Handler{
		validator: validator,
		uploader:  uploader,
	}
}

// Image 處理圖片上傳,multipart 欄位名為 file
func (h *Handler) Image(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A file is required",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not read uploaded file",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not read uploaded file",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	mediaType, err := h.validator.Validate(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	url, err := h.uploader.UploadRecipeImage(c.Request.Context(), fh.Filename, mediaType, data)
	if err != nil {
		common.LogError("圖片上傳失敗",
			zap.String("filename", fh.Filename),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Upload failed",
		})
		return
	}

	common.LogInfo("圖片上傳完成",
		zap.String("filename", fh.Filename),
		zap.String("media_type", mediaType),
		zap.Int("size", len(data)),
	)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}
