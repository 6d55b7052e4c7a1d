package structured

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"recipe-manager/internal/infrastructure/config"
)

// FetchError 來源頁面抓取失敗，整次匯入視為失敗
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch URL: %v", e.Err)
	}
	return fmt.Sprintf("failed to fetch URL: %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher 帶固定 User-Agent 的頁面抓取器
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher 創建頁面抓取器
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Fetch.Timeout,
		},
		userAgent: cfg.Fetch.UserAgent,
	}
}

// Fetch 抓取頁面內容，非 2xx 回應視為致命錯誤
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}
