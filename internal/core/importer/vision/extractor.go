// Package vision 用多模態模型從食譜照片抽取候選食譜。
// 圖片先驗證格式、全部一起送出，回應中的 JSON 物件防禦性收斂成標準形狀。
package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
)

// 允許的圖片格式
var supportedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ImageInput 一張上傳的食譜圖片
type ImageInput struct {
	Filename  string
	MediaType string
	Data      []byte
}

// Generator 多模態推理服務的最小介面
type Generator interface {
	Generate(ctx context.Context, prompt string, imageURLs []string) (string, error)
}

// Extractor AI 食譜匯入器
type Extractor struct {
	client Generator
}

// NewExtractor 創建 AI 匯入器
func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{
		client: NewOpenRouterClient(cfg),
	}
}

// Extract 從一張或多張圖片抽取單一候選食譜
// 格式驗證在任何網路呼叫之前完成；任一張不合格整批直接失敗
func (e *Extractor) Extract(ctx context.Context, images []ImageInput) (*common.RecipeCandidate, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images provided")
	}

	for _, img := range images {
		if !supportedMediaTypes[img.MediaType] {
			return nil, &UnsupportedFormatError{Filename: img.Filename, MediaType: img.MediaType}
		}
	}

	// 編碼彼此獨立，並行處理；送出仍是單一批次請求
	imageURLs := make([]string, len(images))
	var wg sync.WaitGroup
	for i, img := range images {
		wg.Add(1)
		go func(i int, img ImageInput) {
			defer wg.Done()
			imageURLs[i] = fmt.Sprintf("data:%s;base64,%s", img.MediaType, base64.StdEncoding.EncodeToString(img.Data))
		}(i, img)
	}
	wg.Wait()

	text, err := e.client.Generate(ctx, buildPrompt(len(images)), imageURLs)
	if err != nil {
		common.LogError("AI 匯入請求失敗",
			zap.Error(err),
			zap.Int("images", len(images)),
		)
		return nil, err
	}

	span, ok := common.ExtractJSONObject(text)
	if !ok {
		common.LogWarn("模型回應中找不到 JSON 物件",
			zap.Int("response_length", len(text)),
		)
		return nil, &ExtractionError{}
	}

	var parsed map[string]interface{}
	if err := common.ParseJSON(span, &parsed); err != nil {
		common.LogWarn("模型回應的 JSON 片段無法解析",
			zap.Error(err),
			zap.Int("span_length", len(span)),
		)
		return nil, &ExtractionError{Err: err}
	}

	candidate := coerceCandidate(parsed)
	common.LogInfo("AI 匯入成功",
		zap.Int("images", len(images)),
		zap.Int("ingredients", len(candidate.Ingredients)),
		zap.Int("steps", len(candidate.Steps)),
	)
	return candidate, nil
}
