// Package importer 提供從網址與截圖匯入食譜的端點。
// 兩個端點都回傳統一的結果格式:
//
//	成功: {"success": true, "recipe": {...}}
//	失敗: {"success": false, "error": "..."}
//
// 匯入失敗屬於預期內的結果(來源頁面沒有結構化資料、圖片格式不符等),
// 因此一律以 200 回應,由 success 欄位區分。
package importer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-manager/internal/core/importer/structured"
	"recipe-manager/internal/core/importer/vision"
	"recipe-manager/internal/pkg/common"
)

// maxScreenshotImages 單次截圖匯入的圖片上限
const maxScreenshotImages = 5

// URLImporter 網址匯入介面
type URLImporter interface {
	FromURL(ctx context.Context, url string) (*common.RecipeCandidate, error)
}

// ScreenshotImporter 截圖匯入介面
type ScreenshotImporter interface {
	Extract(ctx context.Context, images []vision.ImageInput) (*common.RecipeCandidate, error)
}

// Handler 匯入處理器
type Handler struct {
	structured URLImporter
	vision     ScreenshotImporter
}

// NewHandler 創建匯入處理器
func NewHandler(structuredExtractor URLImporter, visionExtractor ScreenshotImporter) *Handler {
	return &Handler{
		structured: structuredExtractor,
		vision:     visionExtractor,
	}
}

type importURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// FromURL 處理網址匯入請求
func (h *Handler) FromURL(c *gin.Context) {
	var req importURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "URL must start with http:// or https://",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	candidate, err := h.structured.FromURL(c.Request.Context(), req.URL)
	if err != nil {
		common.LogWarn("網址匯入失敗",
			zap.String("url", req.URL),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, failureResult(err))
		return
	}

	common.LogInfo("網址匯入完成",
		zap.String("url", req.URL),
		zap.String("title", candidate.Title),
		zap.Int("ingredients", len(candidate.Ingredients)),
		zap.Int("steps", len(candidate.Steps)),
	)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipe":  candidate,
	})
}

// FromScreenshots 處理截圖匯入請求,multipart 欄位名為 images
func (h *Handler) FromScreenshots(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid multipart form",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "At least one image is required",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}
	if len(files) > maxScreenshotImages {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Too many images",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	inputs := make([]vision.ImageInput, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Could not read uploaded file",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Could not read uploaded file",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}
		inputs = append(inputs, vision.ImageInput{
			Filename:  fh.Filename,
			MediaType: mediaTypeOf(fh.Header.Get("Content-Type"), data),
			Data:      data,
		})
	}

	candidate, err := h.vision.Extract(c.Request.Context(), inputs)
	if err != nil {
		common.LogWarn("截圖匯入失敗",
			zap.Int("image_count", len(inputs)),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, failureResult(err))
		return
	}

	common.LogInfo("截圖匯入完成",
		zap.Int("image_count", len(inputs)),
		zap.String("title", candidate.Title),
		zap.Int("ingredients", len(candidate.Ingredients)),
		zap.Int("steps", len(candidate.Steps)),
	)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipe":  candidate,
	})
}

// mediaTypeOf 取用戶端宣告的 Content-Type,缺少時以內容嗅探補上
func mediaTypeOf(declared string, data []byte) string {
	declared = strings.TrimSpace(strings.Split(declared, ";")[0])
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}

// failureResult 將匯入錯誤轉為統一的失敗回應
func failureResult(err error) gin.H {
	msg, code := importError(err)
	return gin.H{
		"success": false,
		"error":   msg,
		"code":    code,
	}
}

// importError 將匯入錯誤轉為給用戶看的訊息與錯誤代碼
func importError(err error) (string, string) {
	var fetchErr *structured.FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.StatusCode > 0 {
			return "Could not fetch the page (HTTP " + strconv.Itoa(fetchErr.StatusCode) + ")", common.ErrCodeFetchError
		}
		return "Could not fetch the page", common.ErrCodeFetchError
	}

	var formatErr *vision.UnsupportedFormatError
	if errors.As(err, &formatErr) {
		return formatErr.Error(), common.ErrCodeUnsupportedFormat
	}

	var extractErr *vision.ExtractionError
	if errors.As(err, &extractErr) {
		return extractErr.Error(), common.ErrCodeExtractionError
	}

	return "Import failed", common.ErrCodeExtractionError
}
