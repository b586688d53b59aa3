package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ExploreURL     string
	ExploreToken   string
	CardPageURL    string
	EPAPIURL       string
	EPClientID     string
	EPClientSecret string

	DataDir string

	MaxPages     int
	PageDelay    time.Duration
	PricingDelay time.Duration
	UploadDelay  time.Duration

	PollInterval time.Duration
	PollLimit    int

	// Static GBP->USD rate and fallback price in pence. Placeholders for
	// real FX, kept configurable on purpose.
	FXRate            float64
	DefaultPriceMinor int

	DatabaseURL string
	RedisURL    string
	MetricsPort string
}

func Load() *Config {
	// Loads .env from the project root first, then the current directory
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		ExploreURL:     getEnv("EXPLORE_URL", "https://www.thortful.com/api/v3/explore"),
		ExploreToken:   os.Getenv("EXPLORE_USER_TOKEN"),
		CardPageURL:    getEnv("CARD_PAGE_URL", "https://www.thortful.com/card/"),
		EPAPIURL:       getEnv("EP_API_URL", "https://epcc-integration.global.ssl.fastly.net"),
		EPClientID:     os.Getenv("EP_CLIENT_ID"),
		EPClientSecret: os.Getenv("EP_CLIENT_SECRET"),

		DataDir: getEnv("DATA_DIR", "data"),

		MaxPages:     getEnvInt("MAX_PAGES", 5),
		PageDelay:    getEnvDuration("PAGE_DELAY", time.Second),
		PricingDelay: getEnvDuration("PRICING_DELAY", 1500*time.Millisecond),
		UploadDelay:  getEnvDuration("UPLOAD_DELAY", 500*time.Millisecond),

		PollInterval: getEnvDuration("JOB_POLL_INTERVAL", 10*time.Second),
		PollLimit:    getEnvInt("JOB_POLL_LIMIT", 30),

		FXRate:            getEnvFloat("FX_RATE", 1.27),
		DefaultPriceMinor: getEnvInt("DEFAULT_PRICE_MINOR", 369),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		MetricsPort: os.Getenv("METRICS_PORT"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getEnvFloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

func getEnvDuration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if t, err := time.ParseDuration(v); err == nil {
			return t
		}
	}
	return d
}
