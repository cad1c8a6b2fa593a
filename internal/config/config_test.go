package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_BASE_URL", "STATE_BACKEND", "TAX_RATE", "DELIVERY_BUSINESS_DAYS", "API_TIMEOUT"} {
		t.Setenv(key, "")
	}

	Load()

	assert.Equal(t, "8080", AppEnv.Port)
	assert.Equal(t, "http://localhost:8000/plant_store/api", AppEnv.APIBaseURL)
	assert.Equal(t, BackendRedis, AppEnv.StateBackend)
	assert.True(t, AppEnv.TaxRate.Equal(decimal.RequireFromString("0.08")))
	assert.Equal(t, 4, AppEnv.DeliveryBusinessDays)
	assert.Equal(t, time.Duration(0), AppEnv.APITimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://shop.example.com/api/")
	t.Setenv("STATE_BACKEND", "MEMORY")
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("DELIVERY_BUSINESS_DAYS", "6")
	t.Setenv("API_TIMEOUT", "15")

	Load()

	assert.Equal(t, "https://shop.example.com/api", AppEnv.APIBaseURL)
	assert.Equal(t, BackendMemory, AppEnv.StateBackend)
	assert.Equal(t, "0.1", AppEnv.TaxRate.String())
	assert.Equal(t, 6, AppEnv.DeliveryBusinessDays)
	assert.Equal(t, 15*time.Second, AppEnv.APITimeout)
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Config{APIBaseURL: "http://x", StateBackend: "sqlite"}
	require.Error(t, cfg.validate())
}

func TestValidateRequiresMongoURI(t *testing.T) {
	cfg := Config{APIBaseURL: "http://x", StateBackend: BackendMongo}
	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}
