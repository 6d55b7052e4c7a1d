package supabase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"recipe-manager/internal/pkg/common"
)

// UploadRecipeImage 上傳圖片到食譜圖片 bucket，回傳公開 URL
// 物件名稱用 UUID，避免上傳檔名衝突
func (c *Client) UploadRecipeImage(ctx context.Context, filename string, mediaType string, data []byte) (string, error) {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	objectName := fmt.Sprintf("%s.%s", common.GenerateUUID(), ext)
	bucket := c.config.Supabase.StorageBucket

	resp, err := c.store.R().
		SetContext(ctx).
		SetHeader("Content-Type", mediaType).
		SetBody(data).
		Post(fmt.Sprintf("/object/%s/%s", bucket, objectName))
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if resp.IsError() {
		return "", apiError("upload image", resp.StatusCode(), resp.String())
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.config.Supabase.URL, bucket, objectName)
	common.LogInfo("圖片已上傳",
		zap.String("object", objectName),
		zap.Int("size", len(data)),
	)
	return publicURL, nil
}
