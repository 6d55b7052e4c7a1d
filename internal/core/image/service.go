package image

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	_ "image/gif"  // 支援 GIF
	_ "image/jpeg" // 支援 JPEG
	_ "image/png"  // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP
)

// Service 圖片驗證服務
type Service struct {
	maxSizeBytes int64
}

// NewService 創建新的圖片驗證服務
func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
	}
}

// Validate 檢查上傳的圖片：大小限制、內容嗅探、可解碼性
// 回傳嗅探出的媒體類型
func (s *Service) Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data is empty")
	}
	if int64(len(data)) > s.maxSizeBytes {
		return "", fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}

	mediaType := http.DetectContentType(data)
	switch mediaType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return "", fmt.Errorf("unsupported image type: %s", mediaType)
	}

	// 確認圖片真的可以解碼，擋掉只有正確魔術位元組的壞檔
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return mediaType, nil
}
