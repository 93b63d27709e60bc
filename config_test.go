package passkey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	cfg := LoadConfigFromEnv()

	assert.Equal(t, "localhost", cfg.RPID)
	assert.Equal(t, DefaultRPDisplayName, cfg.RPDisplayName)
	assert.Equal(t, DefaultOrigin, cfg.Origin)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}

func TestLoadConfigFromEnvCustomRPID(t *testing.T) {
	t.Setenv("AEGIS_PASSKEY_RP_ID", "bank.example.com")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, "bank.example.com", cfg.RPID)
}

func TestLoadConfigFromEnvCustomOrigin(t *testing.T) {
	t.Setenv("AEGIS_PASSKEY_ORIGIN", "https://bank.example.com")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, "https://bank.example.com", cfg.Origin)
}

func TestLoadConfigFromEnvCustomTimeout(t *testing.T) {
	t.Setenv("AEGIS_PASSKEY_TIMEOUT", "90s")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestLoadConfigFromEnvInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("AEGIS_PASSKEY_TIMEOUT", "bad-duration")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "localhost", cfg.RPID)
}
