// Package config は環境変数からアプリケーション全体の設定を読み込みます。
// 設定は起動時に一度だけ構築され、各コンポーネントのコンストラクタへ明示的に渡されます。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// 認証設定
	JWTSecret        string        // トークン署名用の共有シークレット
	RegisterTokenTTL time.Duration // 新規登録時に発行するトークンの有効期間
	LoginTokenTTL    time.Duration // ログイン時に発行するトークンの有効期間
	CookieSecure     bool          // Secure属性付きCookieを使用するか（本番環境でtrue）

	// MySQL設定（ユーザーストア）
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	RunMigrations bool // 起動時にAutoMigrateを実行するか

	// MongoDB設定（書籍カタログ）
	MongoURI      string
	MongoDatabase string

	// Redis設定（書籍キャッシュ、未設定時はキャッシュなしで動作）
	RedisHost     string
	RedisPort     string
	RedisPassword string
	CacheTTL      time.Duration // 書籍キャッシュのTTL
}

// Load は環境変数から設定を読み込みます。
// .env ファイルが存在する場合は先に読み込みます（既存の環境変数が優先）。
func Load() (*Config, error) {
	// .env は開発用。存在しなければスキップ
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		RegisterTokenTTL: getEnvAsDuration("REGISTER_TOKEN_TTL", time.Hour),
		LoginTokenTTL:    getEnvAsDuration("LOGIN_TOKEN_TTL", 24*time.Hour),
		CookieSecure:     getEnvAsBool("COOKIE_SECURE", false),

		DBUser:        getEnv("DB_USER", "root"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBName:        getEnv("DB_NAME", "bookstore"),
		RunMigrations: getEnvAsBool("RUN_MIGRATIONS", false),

		MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "bookstore"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvAsDuration("CACHE_TTL", 5*time.Minute),
	}

	if cfg.RegisterTokenTTL <= 0 || cfg.LoginTokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive (register=%v login=%v)",
			cfg.RegisterTokenTTL, cfg.LoginTokenTTL)
	}

	return cfg, nil
}

// DSN はMySQL接続用のDSN文字列を組み立てます。
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// RedisAddr はRedis接続用のアドレスを返します。RedisHost未設定時は空文字を返します。
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// getEnv は環境変数を取得し、未設定の場合はデフォルト値を返します。
func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getEnvAsBool は環境変数をbool値として取得します。
func getEnvAsBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvAsDuration は環境変数をtime.Durationとして取得します（例: "30m", "24h"）。
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}
