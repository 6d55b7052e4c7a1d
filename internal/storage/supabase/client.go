// Package supabase 包裝託管後端的 PostgREST 與 Storage API。
// 持久化引擎本身不在本服務範圍內，這裡只做邊界上的 HTTP 對接。
package supabase

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
)

// Client Supabase 後端客戶端
type Client struct {
	config *config.Config
	rest   *resty.Client
	store  *resty.Client
}

// NewClient 創建 Supabase 客戶端
func NewClient(cfg *config.Config) *Client {
	rest := resty.New().
		SetBaseURL(cfg.Supabase.URL+"/rest/v1").
		SetHeader("apikey", cfg.Supabase.ServiceKey).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Supabase.ServiceKey)).
		SetHeader("Content-Type", "application/json")

	store := resty.New().
		SetBaseURL(cfg.Supabase.URL+"/storage/v1").
		SetHeader("apikey", cfg.Supabase.ServiceKey).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Supabase.ServiceKey))

	return &Client{
		config: cfg,
		rest:   rest,
		store:  store,
	}
}

// apiError 統一包裝後端非 2xx 回應
func apiError(op string, status int, body string) error {
	if len(body) > 200 {
		body = body[:200]
	}
	msg := fmt.Sprintf("supabase %s failed: status %d: %s", op, status, body)
	return common.NewError(common.ErrCodeStorageError, msg, http.StatusBadGateway, nil)
}
