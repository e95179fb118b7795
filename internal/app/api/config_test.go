package api

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"

	adoptapp "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.PostgresDSN)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, adoptapp.AllowReadoption, cfg.Policy())
	assert.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	assert.False(t, cfg.TemporalEnabled())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, "local", cfg.Environment)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DSN", " postgres://pets@localhost/pets ")
	t.Setenv("ADOPTION_POLICY", "reject")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("TEMPORAL_ADDRESS", "temporal:7233")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres://pets@localhost/pets", cfg.PostgresDSN)
	assert.Equal(t, adoptapp.RejectAdopted, cfg.Policy())
	assert.False(t, cfg.MigrateOnStart)
	assert.True(t, cfg.TemporalEnabled())
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout())
}

func TestLoadConfig_TemporalDisabled(t *testing.T) {
	t.Setenv("TEMPORAL_ADDRESS", "temporal:7233")
	t.Setenv("TEMPORAL_DISABLED", "yes")

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.False(t, cfg.TemporalEnabled())
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"port":     {"PORT", "eighty"},
		"policy":   {"ADOPTION_POLICY", "sometimes"},
		"shutdown": {"SHUTDOWN_TIMEOUT_SECONDS", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := loadConfig(viper.New())
			require.Error(t, err)
		})
	}
}
