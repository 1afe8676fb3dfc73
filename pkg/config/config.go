package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// Remote catalog endpoint set, one address per operation.
	FetchMenuURL  string
	AddItemURL    string
	UpdateItemURL string
	DeleteItemURL string

	CatalogTimeout   time.Duration
	CatalogCacheSize int

	// CartFile is the well-known slot the cart snapshot persists to.
	CartFile string
}

func Load() Config {
	// A local .env can hold the endpoint addresses during development;
	// real environment variables win over it.
	_ = godotenv.Load()

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		FetchMenuURL:  getEnv("FETCH_MENU_API", ""),
		AddItemURL:    getEnv("ADD_ITEM_API", ""),
		UpdateItemURL: getEnv("UPDATE_ITEM_API", ""),
		DeleteItemURL: getEnv("DELETE_ITEM_API", ""),

		CatalogTimeout:   getEnvDuration("CATALOG_TIMEOUT", 10*time.Second),
		CatalogCacheSize: getEnvInt("CATALOG_CACHE_SIZE", 256),

		CartFile: getEnv("CART_FILE", "data/cart.json"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
