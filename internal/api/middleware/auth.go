package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
)

// Auth 登入驗證中間件：檢查 cookie 是否攜帶正確的密鑰
// 登入路由本身不套用這個中間件
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cfg.Auth.CookieName)
		if err != nil || subtle.ConstantTimeCompare([]byte(cookie), []byte(cfg.Auth.Secret)) != 1 {
			common.LogWarn("未授權的訪問",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
				"code":  common.ErrCodeUnauthorized,
			})
			return
		}

		c.Next()
	}
}
