package settings

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config contains the runtime configuration of the application. Values come
// from the environment (optionally a .env file); everything except the
// weather API key has a working default.
type Config struct {
	Port         string
	ChatMode     bool
	DatabasePath string

	WeatherAPIKey string
	WeatherAPIURL string
	FoodAPIURL    string

	// Outbound lookup throttling: LookupMaxCalls acquisitions per
	// LookupWindow, shared per lookup kind.
	LookupMaxCalls int
	LookupWindow   time.Duration

	FoodCacheSize    int
	WeatherCacheSize int
	WeatherCacheTTL  time.Duration
}

var (
	config     *Config
	configOnce sync.Once
)

// Load returns the singleton configuration, reading the environment on the
// first call. A missing weather API key is not fatal here; weather lookups
// will simply fail as "not found" until one is provided.
func Load() *Config {
	configOnce.Do(func() {
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded environment from .env file")
		}
		config = loadFromEnv()

		if config.WeatherAPIKey == "" {
			log.Println("Warning: OPEN_WEATHER_TOKEN is not set, weather lookups will be unavailable")
		}
	})
	return config
}

// loadFromEnv builds a Config from the current process environment.
func loadFromEnv() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		ChatMode:     os.Getenv("AQUACAL_CHAT") == "1",
		DatabasePath: getEnv("AQUACAL_DB", "aquacal.db"),

		WeatherAPIKey: os.Getenv("OPEN_WEATHER_TOKEN"),
		WeatherAPIURL: getEnv("WEATHER_API_URL", "http://api.openweathermap.org/data/2.5/weather"),
		FoodAPIURL:    getEnv("FOOD_API_URL", "https://world.openfoodfacts.org/cgi/search.pl"),

		LookupMaxCalls: getEnvInt("LOOKUP_MAX_CALLS", 10),
		LookupWindow:   getEnvDuration("LOOKUP_WINDOW", 59*time.Second),

		FoodCacheSize:    getEnvInt("FOOD_CACHE_SIZE", 1024),
		WeatherCacheSize: getEnvInt("WEATHER_CACHE_SIZE", 1024),
		WeatherCacheTTL:  getEnvDuration("WEATHER_CACHE_TTL", 10*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		log.Printf("Invalid value for %s: %q, using default %s", key, value, fallback)
		return fallback
	}
	return parsed
}
