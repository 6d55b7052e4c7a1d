package common

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeUnauthorized    = "UNAUTHORIZED"      // 401
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeStorageError = "STORAGE_ERROR" // 502，託管後端回錯

	// 匯入相關錯誤
	ErrCodeFetchError        = "FETCH_ERROR"        // 來源頁面抓取失敗
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT" // 圖片格式不在允許清單
	ErrCodeExtractionError   = "EXTRACTION_ERROR"   // 模型回應中找不到 JSON
)
