package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"usd_converter/internal/models"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию приложения
type Config struct {
	External ExternalConfig
	Cache    CacheConfig
	Retry    RetryConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ExternalConfig содержит настройки внешнего API курсов
type ExternalConfig struct {
	URL     string
	Timeout time.Duration
}

// CacheConfig содержит настройки файлового кэша курсов
type CacheConfig struct {
	File   string
	Expiry time.Duration
}

// RetryConfig содержит настройки повторных запросов к API
type RetryConfig struct {
	MaxRetries int
	Delay      time.Duration
}

// LoggingConfig содержит настройки логирования
type LoggingConfig struct {
	Level  string
	Format string
}

// AppConfig содержит общие настройки приложения
type AppConfig struct {
	Currencies []string
}

const (
	DefaultAPIURL     = "https://api.exchangerate-api.com/v4/latest/USD"
	DefaultAPITimeout = 5 * time.Second
	DefaultCacheFile  = "services/_static/exchange_rates.json"
	DefaultExpiry     = time.Hour
	DefaultMaxRetries = 3
	DefaultRetryDelay = 2 * time.Second
)

// DefaultCurrencies - валюты, в которые конвертируем сумму по умолчанию
var DefaultCurrencies = models.TargetCurrencies

// Load загружает конфигурацию из переменных окружения
// Сначала пытается загрузить .env файл, затем использует системные env vars
func Load() *Config {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файл не найден)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables: %v", err)
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию из уже загруженного окружения
func FromEnv() *Config {
	return &Config{
		External: ExternalConfig{
			URL:     getEnv("EXCHANGE_API_URL", DefaultAPIURL),
			Timeout: getDurationEnv("EXCHANGE_API_TIMEOUT", DefaultAPITimeout),
		},
		Cache: CacheConfig{
			File:   getEnv("CACHE_FILE", DefaultCacheFile),
			Expiry: getDurationEnv("CACHE_EXPIRY", DefaultExpiry),
		},
		Retry: RetryConfig{
			MaxRetries: getIntEnv("MAX_RETRIES", DefaultMaxRetries),
			Delay:      getDurationEnv("RETRY_DELAY", DefaultRetryDelay),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		App: AppConfig{
			Currencies: getStringSliceEnv("CONVERT_CURRENCIES", DefaultCurrencies),
		},
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv получает значение переменной окружения как duration или возвращает значение по умолчанию
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv получает значение переменной окружения как int или возвращает значение по умолчанию
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getStringSliceEnv получает значение переменной окружения как slice строк или возвращает значение по умолчанию
func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.ToUpper(strings.TrimSpace(item)); item != "" {
				result = append(result, item)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
