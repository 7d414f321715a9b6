package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	AllowedOrigin     string
	DatabaseURL       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	AuthSecret        string
	TokenTTLMinutes   int
	AssetsDir         string
	OutputDir         string
	ListingTTLSeconds int
}

func Load() Config {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	tokenTTL, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_MINUTES", "480"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 480
	}
	listingTTL, err := strconv.Atoi(getEnv("LISTING_TTL_SECONDS", "30"))
	if err != nil || listingTTL < 1 {
		listingTTL = 30
	}

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		AuthSecret:        strings.TrimSpace(os.Getenv("AUTH_SECRET")),
		TokenTTLMinutes:   tokenTTL,
		AssetsDir:         getEnv("ASSETS_DIR", "assets"),
		OutputDir:         getEnv("OUTPUT_DIR", "generated"),
		ListingTTLSeconds: listingTTL,
	}

	return cfg
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
