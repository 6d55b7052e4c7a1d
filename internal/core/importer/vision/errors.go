package vision

import "fmt"

// UnsupportedFormatError 上傳圖片的宣告格式不在允許清單
// 整批直接拒絕，錯誤訊息點名出問題的檔案
type UnsupportedFormatError struct {
	Filename  string
	MediaType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s. Use JPEG, PNG, WebP, or GIF.", e.Filename)
}

// ExtractionError 模型回應裡找不到可解析的 JSON 物件
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "could not extract recipe from image(s)"
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
