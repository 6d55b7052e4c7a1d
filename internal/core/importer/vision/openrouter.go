package vision

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
)

// OpenRouterClient 多模態推理服務客戶端
type OpenRouterClient struct {
	config *config.Config
	client *resty.Client
}

// NewOpenRouterClient 創建 OpenRouter 客戶端
func NewOpenRouterClient(cfg *config.Config) *OpenRouterClient {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-manager.local").
		SetHeader("X-Title", "Recipe Manager")

	return &OpenRouterClient{
		config: cfg,
		client: client,
	}
}

// Generate 將多張圖片與指示文字打包成單一請求送出，回傳第一個文字回應
// 不做重試：單一外部呼叫失敗即整次匯入失敗
func (c *OpenRouterClient) Generate(ctx context.Context, prompt string, imageURLs []string) (string, error) {
	msgContent := make([]map[string]interface{}, 0, len(imageURLs)+1)
	// 圖片區塊放在前面，指示文字放最後
	for _, url := range imageURLs {
		msgContent = append(msgContent, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]string{
				"url": url,
			},
		})
	}
	msgContent = append(msgContent, map[string]interface{}{
		"type": "text",
		"text": prompt,
	})

	req := map[string]interface{}{
		"model": c.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": msgContent,
			},
		},
		"max_tokens": c.config.OpenRouter.MaxTokens,
	}

	common.LogInfo("Sending request to OpenRouter",
		zap.String("model", c.config.OpenRouter.Model),
		zap.Int("images", len(imageURLs)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned error: status %d", resp.StatusCode())
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	return result.Choices[0].Message.Content, nil
}
