package db

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はセッション保存用のDBに接続して *gorm.DB を返す。
func Connect() (*gorm.DB, error) {
	gcfg := &gorm.Config{
		// SQLログはzap側に任せる
		Logger: logger.Default.LogMode(logger.Silent),
	}

	// DATABASE_URL があれば最優先で使う
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), gcfg)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getenv("POSTGRES_HOST", "localhost"),
		getenv("POSTGRES_PORT", "5432"),
		getenv("POSTGRES_USER", "postgres"),
		getenv("POSTGRES_PASSWORD", "postgres"),
		getenv("POSTGRES_DB", "storefront"),
		getenv("POSTGRES_SSLMODE", "disable"),
	)

	return gorm.Open(postgres.Open(dsn), gcfg)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
