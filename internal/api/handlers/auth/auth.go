// Package auth 提供單人站點的密碼登入。
// 登入成功後發一個帶密鑰的 httpOnly cookie，之後的請求靠 middleware 驗證。
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
)

// LoginRequest 登入請求
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Handler 登入處理器
type Handler struct {
	config *config.Config
}

// NewHandler 創建登入處理器
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{config: cfg}
}

// Login 驗證站點密碼並設置登入 cookie
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.config.Auth.SitePassword)) != 1 {
		common.LogWarn("登入失敗",
			zap.String("ip", c.ClientIP()),
		)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wrong password",
			"code":  common.ErrCodeUnauthorized,
		})
		return
	}

	secure := h.config.App.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.config.Auth.CookieName,
		h.config.Auth.Secret,
		int(h.config.Auth.CookieMaxAge.Seconds()),
		"/",
		"",
		secure,
		true,
	)

	common.LogInfo("登入成功",
		zap.String("ip", c.ClientIP()),
	)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout 清除登入 cookie
func (h *Handler) Logout(c *gin.Context) {
	secure := h.config.App.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.Auth.CookieName, "", -1, "/", "", secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
