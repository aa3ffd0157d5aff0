package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// 実機で使っていた API のベースURL
	DefaultAPIBaseURL     = "http://43.204.250.254:4001"
	DefaultRequestTimeout = 20 * time.Second
)

// セッション保存先
const (
	SessionDriverFile   = "file"
	SessionDriverDB     = "db"
	SessionDriverMemory = "memory"
)

// Configはアプリ全体の設定
type Config struct {
	APIBaseURL     string        // REST APIのベースURL
	RequestTimeout time.Duration // 1リクエストの上限時間

	SessionDriver string // file / db / memory
	SessionFile   string // SessionDriver=file のときの保存先

	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error

	Port      string // スタブAPIのポート
	JWTSecret string // スタブAPIのJWT署名シークレット
}

// Loadは.envと環境変数から設定を読む
func Load() (Config, error) {
	//.envは無くてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	timeout, err := durationEnv("STOREFRONT_REQUEST_TIMEOUT", DefaultRequestTimeout)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL:     getenv("STOREFRONT_API_URL", DefaultAPIBaseURL),
		RequestTimeout: timeout,

		SessionDriver: strings.ToLower(getenv("SESSION_DRIVER", SessionDriverFile)),
		SessionFile:   getenv("SESSION_FILE", defaultSessionFile()),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		Port:      getenv("PORT", "4001"),
		JWTSecret: getenv("JWT_SECRET", "dev_secret_change_me"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validateは値の整合性をチェックする
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("STOREFRONT_API_URL must be absolute url: %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("STOREFRONT_REQUEST_TIMEOUT must be positive")
	}

	switch c.SessionDriver {
	case SessionDriverFile:
		if c.SessionFile == "" {
			return fmt.Errorf("SESSION_FILE is required")
		}
	case SessionDriverDB, SessionDriverMemory:
	default:
		return fmt.Errorf("SESSION_DRIVER must be one of file/db/memory: %q", c.SessionDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "storefront", "session.json")
	}
	return filepath.Join(home, ".storefront", "session.json")
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
