package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	OpenRouter  OpenRouterConfig `mapstructure:"openrouter"`
	Supabase    SupabaseConfig   `mapstructure:"supabase"`
	Auth        AuthConfig       `mapstructure:"auth"`
	Fetch       FetchConfig      `mapstructure:"fetch"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	Redis       RedisConfig      `mapstructure:"redis"`
	Image       ImageConfig      `mapstructure:"image"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SupabaseConfig Supabase 後端配置
type SupabaseConfig struct {
	URL           string `mapstructure:"url"`
	ServiceKey    string `mapstructure:"service_key"`
	StorageBucket string `mapstructure:"storage_bucket"`
}

// AuthConfig 登入驗證配置
type AuthConfig struct {
	SitePassword string        `mapstructure:"site_password"`
	Secret       string        `mapstructure:"secret"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieMaxAge time.Duration `mapstructure:"cookie_max_age"`
}

// FetchConfig 網頁抓取配置
type FetchConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig 登入速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// RedisConfig Redis 配置（留空則使用記憶體限流器）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ImageConfig 圖片配置
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	viper.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("supabase.url", "SUPABASE_URL")
	viper.BindEnv("supabase.service_key", "SUPABASE_SERVICE_KEY")
	viper.BindEnv("supabase.storage_bucket", "SUPABASE_STORAGE_BUCKET")
	viper.BindEnv("auth.site_password", "SITE_PASSWORD")
	viper.BindEnv("auth.secret", "AUTH_SECRET")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration",
		"openrouter_api_key:", maskSecret(viper.GetString("openrouter.api_key")),
		"openrouter_model:", viper.GetString("openrouter.model"),
		"supabase_url:", viper.GetString("supabase.url"),
	)

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskSecret 遮罩密鑰，只顯示前後各 4 個字符
func maskSecret(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-manager")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// OpenRouter 設定
	viper.SetDefault("openrouter.model", "qwen/qwen2.5-vl-72b-instruct:free")
	viper.SetDefault("openrouter.max_tokens", 4096)
	viper.SetDefault("openrouter.timeout", "60s")

	// Supabase 設定
	viper.SetDefault("supabase.storage_bucket", "recipe-images")

	// 登入驗證設定
	viper.SetDefault("auth.cookie_name", "recipe-auth")
	viper.SetDefault("auth.cookie_max_age", "720h") // 30 天

	// 網頁抓取設定
	viper.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; RecipeManager/1.0; +personal-use)")
	viper.SetDefault("fetch.timeout", "30s")

	// 登入限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 5)
	viper.SetDefault("rate_limit.window", "1m")

	// 圖片設定
	viper.SetDefault("image.max_size_bytes", 10*1024*1024) // 10MB

	// 去重窗口預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證登入設定
	if config.Auth.SitePassword == "" {
		return fmt.Errorf("site password is required")
	}
	if config.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required")
	}

	// 驗證後端設定
	if config.Supabase.URL == "" {
		return fmt.Errorf("supabase url is required")
	}
	if config.Supabase.ServiceKey == "" {
		return fmt.Errorf("supabase service key is required")
	}

	// 驗證限流設定
	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}
