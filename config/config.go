package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API      APIConfig
	HTTP     HTTPConfig
	DB       DBConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Checkout CheckoutConfig
	LogLevel string
}

// APIConfig points the storefront at the REST API it consumes.
type APIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ReviewsLimit int
}

type HTTPConfig struct {
	Addr        string
	AutoMigrate bool
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RedisConfig struct {
	Addr         string
	Password     string
	MenuCacheTTL time.Duration
}

type TelegramConfig struct {
	Token          string
	MessageToken   string // token for sending order notifications to admin
	AdminID        int64
	WhatsAppNumber string
}

type CheckoutConfig struct {
	DeliveryCharge int64
	ConfirmDelay   time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	adminID, _ := strconv.ParseInt(getEnv("ADMIN_ID", "0"), 10, 64)

	return &Config{
		API: APIConfig{
			BaseURL:      strings.TrimRight(getEnv("API_URL", "http://localhost:8001"), "/"),
			Timeout:      getDuration("API_TIMEOUT", 15*time.Second),
			ReviewsLimit: getInt("REVIEWS_LIMIT", 10),
		},
		HTTP: HTTPConfig{
			Addr:        getEnv("HTTP_ADDR", ":8001"),
			AutoMigrate: getBool("AUTO_MIGRATE"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "restaurant"),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			MenuCacheTTL: getDuration("MENU_CACHE_TTL", 5*time.Minute),
		},
		Telegram: TelegramConfig{
			Token:          getEnv("TOKEN", ""),
			MessageToken:   getEnv("MESSAGE_TOKEN", ""),
			AdminID:        adminID,
			WhatsAppNumber: getEnv("WHATSAPP_NUMBER", ""),
		},
		Checkout: CheckoutConfig{
			DeliveryCharge: int64(getInt("DELIVERY_CHARGE", 30)),
			ConfirmDelay:   getDuration("CONFIRM_DELAY", 3*time.Second),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d < 0 {
		return def
	}
	return d
}

// getBool accepts "1" or "true" (any case), like AUTO_MIGRATE always has.
func getBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return v == "1" || strings.EqualFold(v, "true")
}
