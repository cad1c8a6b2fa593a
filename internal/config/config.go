package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var AppEnv Config

type Config struct {
	Port       string
	APIBaseURL string
	APITimeout time.Duration

	StateBackend   string
	StateKeyPrefix string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	MongoURI       string
	DBName         string

	TaxRate              decimal.Decimal
	DeliveryBusinessDays int

	LogLevel string
}

const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

func Load() {
	if err := godotenv.Load(); err != nil {
		log.WithField("component", "CONFIG").Info(".env not loaded: ", err)
	}
	AppEnv = Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		APIBaseURL:           strings.TrimRight(getEnvOrDefault("API_BASE_URL", "http://localhost:8000/plant_store/api"), "/"),
		APITimeout:           getDurationEnv("API_TIMEOUT", 0, time.Second),
		StateBackend:         strings.ToLower(getEnvOrDefault("STATE_BACKEND", BackendRedis)),
		StateKeyPrefix:       getEnvOrDefault("STATE_KEY_PREFIX", "storefront:"),
		RedisAddr:            getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:              getIntEnv("REDIS_DB", 0),
		MongoURI:             getEnvOrDefault("MONGO_URI", ""),
		DBName:               getEnvOrDefault("DB_NAME", "storefront"),
		TaxRate:              getDecimalEnv("TAX_RATE", decimal.RequireFromString("0.08")),
		DeliveryBusinessDays: getIntEnv("DELIVERY_BUSINESS_DAYS", 4),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if err := AppEnv.validate(); err != nil {
		log.WithField("component", "CONFIG").Fatal(err)
	}

	level, err := log.ParseLevel(AppEnv.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
