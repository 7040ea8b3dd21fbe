package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Redis keyspace
const TEMPLES_GEO_KEY_V1 = "temples_geo_v1"
const TEMPLES_GEO_PLACE_MEMBER_FORMAT_V1 = "temples_geo_place_v1:%s"
const WEATHER_KEY_FORMAT_V1 = "weather_v1:%s"

// API limits
const MAX_CALENDAR_TEMPLES = 3
const UPCOMING_FESTIVALS_LIMIT = 10
const DEFAULT_NEARBY_RADIUS_KM = 50.0

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const TEMPLES_SEED_RESOURCE = "temples.json"
const CURRENT_WEATHER_RESPONSE_RESOURCE = "current_weather_response.json"

const ENV_PROD = "prod"

const defaultTimezone = "Asia/Kolkata"

// Config is the runtime configuration read from the environment.
type Config struct {
	Env                    string        `validate:"required,oneof=dev test prod"`
	HTTPAddr               string        `validate:"required"`
	RedisAddr              string        `validate:"required_if=Env prod"`
	RedisPassword          string
	RedisDB                int           `validate:"gte=0"`
	OpenWeatherBaseURL     string        `validate:"required,url"`
	OpenWeatherAPIKey      string        `validate:"required_if=Env prod"`
	WeatherRefreshInterval time.Duration `validate:"gt=0"`
	WeatherCacheTTL        time.Duration `validate:"gt=0"`
	WeatherCacheSize       int           `validate:"gt=0"`
	Timezone               string        `validate:"required"`
	AllowedOrigins         []string      `validate:"min=1"`
	LogLevel               string        `validate:"omitempty,oneof=trace debug info warn error fatal"`
	LogFile                string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "dev"),
		HTTPAddr:               getEnv("HTTP_ADDR", ":8080"),
		RedisAddr:              getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		OpenWeatherBaseURL:     getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		OpenWeatherAPIKey:      getEnv("OPENWEATHER_API_KEY", ""),
		WeatherRefreshInterval: time.Duration(getEnvInt("WEATHER_REFRESH_MINUTES", 30)) * time.Minute,
		WeatherCacheTTL:        time.Duration(getEnvInt("WEATHER_CACHE_TTL_MINUTES", 180)) * time.Minute,
		WeatherCacheSize:       getEnvInt("WEATHER_CACHE_SIZE", 1000),
		Timezone:               getEnv("TIMEZONE", defaultTimezone),
		AllowedOrigins:         splitList(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:               strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:                getEnv("LOG_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// IsProd reports whether real Redis and weather backends should be used.
func (c *Config) IsProd() bool {
	return c.Env == ENV_PROD
}

// Location resolves the configured timezone. Without tzdata on the host it
// falls back to a fixed India Standard Time offset.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
