package auth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "development"
	cfg.Auth.SitePassword = "hunter2"
	cfg.Auth.Secret = "cookie-secret"
	cfg.Auth.CookieName = "recipe-auth"
	cfg.Auth.CookieMaxAge = 720 * time.Hour
	return cfg
}

func setupRouter(cfg *config.Config) *gin.Engine {
	h := NewHandler(cfg)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	return r
}

func login(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSetsCookie(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	w := login(r, `{"password": "hunter2"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "recipe-auth", c.Name)
	assert.Equal(t, "cookie-secret", c.Value)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure) // 非 production 環境
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int((720 * time.Hour).Seconds()), c.MaxAge)
}

func TestLoginSecureCookieInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.App.Env = "production"
	r := setupRouter(cfg)

	w := login(r, `{"password": "hunter2"}`)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter(testConfig())

	w := login(r, `{"password": "letmein"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong password")
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginBadRequest(t *testing.T) {
	r := setupRouter(testConfig())

	for _, body := range []string{`{}`, `not json`, `{"password": ""}`} {
		w := login(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	r := setupRouter(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "recipe-auth", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
