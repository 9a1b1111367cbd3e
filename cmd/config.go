package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisURL string

	JWTSecret   string
	JWTTokenTTL time.Duration

	CustomerSignupCredits int
	TaskPriceMinor        int64
	PlatformFeeRate       decimal.Decimal
	MatcherMaxReportAge   time.Duration

	OTPTTL         time.Duration
	OTPMaxRequests int
	OTPWindow      time.Duration

	RealtimeRedisBridge bool
	WSAllowedOrigins    []string

	SQSPushQueueURL string
	SQSSmsQueueURL  string

	PendingDispatchSchedule string
	ReconciliationSchedule  string
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the process environment. Call godotenv first to merge a .env file.
func LoadConfig() (Config, error) {
	var err error
	c := Config{
		HTTPPort:                getEnvString("HTTP_PORT", "8080"),
		DBHost:                  getEnvString("DB_HOST", "localhost"),
		DBPort:                  getEnvString("DB_PORT", "5432"),
		DBUser:                  getEnvString("DB_USER", "postgres"),
		DBPassword:              getEnvString("DB_PASSWORD", "postgres"),
		DBName:                  getEnvString("DB_NAME", "dispatch"),
		DBSslMode:               getEnvString("DB_SSLMODE", "disable"),
		RedisURL:                getEnvString("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		WSAllowedOrigins:        getEnvList("WS_ALLOWED_ORIGINS"),
		SQSPushQueueURL:         os.Getenv("SQS_PUSH_QUEUE_URL"),
		SQSSmsQueueURL:          os.Getenv("SQS_SMS_QUEUE_URL"),
		PendingDispatchSchedule: os.Getenv("PENDING_DISPATCH_SCHEDULE"),
		ReconciliationSchedule:  os.Getenv("RECONCILIATION_SCHEDULE"),
	}

	if c.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if c.CustomerSignupCredits, err = getEnvInt("CUSTOMER_SIGNUP_CREDITS", 2); err != nil {
		return Config{}, err
	}
	if c.CustomerSignupCredits < 0 {
		return Config{}, fmt.Errorf("CUSTOMER_SIGNUP_CREDITS must not be negative, got %d", c.CustomerSignupCredits)
	}
	if c.OTPMaxRequests, err = getEnvInt("OTP_MAX_REQUESTS", 5); err != nil {
		return Config{}, err
	}
	if c.OTPMaxRequests <= 0 {
		return Config{}, fmt.Errorf("OTP_MAX_REQUESTS must be positive, got %d", c.OTPMaxRequests)
	}
	if c.RealtimeRedisBridge, err = getEnvBool("REALTIME_REDIS_BRIDGE", false); err != nil {
		return Config{}, err
	}
	if c.JWTTokenTTL, err = getEnvDuration("JWT_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if c.MatcherMaxReportAge, err = getEnvDuration("MATCHER_MAX_REPORT_AGE", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if c.OTPTTL, err = getEnvDuration("OTP_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if c.OTPWindow, err = getEnvDuration("OTP_WINDOW", time.Hour); err != nil {
		return Config{}, err
	}
	if c.TaskPriceMinor, err = strconv.ParseInt(getEnvString("TASK_PRICE_MINOR", "10000"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("invalid TASK_PRICE_MINOR: %w", err)
	}
	if c.TaskPriceMinor <= 0 {
		return Config{}, fmt.Errorf("TASK_PRICE_MINOR must be positive, got %d", c.TaskPriceMinor)
	}
	if c.PlatformFeeRate, err = decimal.NewFromString(getEnvString("PLATFORM_FEE_RATE", "0.10")); err != nil {
		return Config{}, fmt.Errorf("invalid PLATFORM_FEE_RATE: %w", err)
	}

	return c, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getEnvList splits a comma-separated value, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
