package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// An explicit 0 disables the duration.
func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := decimal.NewFromString(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func (c Config) validate() error {
	switch c.StateBackend {
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("ENV REDIS_ADDR is required for the redis state backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("ENV MONGO_URI is required for the mongo state backend")
		}
	case BackendMemory:
	default:
		return errors.Errorf("ENV STATE_BACKEND %q is not supported", c.StateBackend)
	}
	if c.APIBaseURL == "" {
		return errors.New("ENV API_BASE_URL is required")
	}
	if c.TaxRate.IsNegative() {
		return errors.New("ENV TAX_RATE must not be negative")
	}
	if c.DeliveryBusinessDays < 0 {
		return errors.New("ENV DELIVERY_BUSINESS_DAYS must not be negative")
	}
	return nil
}
