package config

import (
	"testing"
	"time"

	"telcochurn/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"BACKEND_PORT", "FRONTEND_PORT", "THRESHOLD", "FOLD", "DATABASE_URL", "MODEL_DIR", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.BackendPort)
	assert.Equal(t, "8501", cfg.Server.FrontendPort)
	assert.Equal(t, "models", cfg.Model.Dir)
	assert.Equal(t, 0.5, cfg.Model.Threshold)
	assert.Equal(t, 1.5, cfg.Data.Fold)
	assert.Equal(t, "Churn", cfg.Data.Target)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_PORT", "9000")
	t.Setenv("FOLD", "3")
	t.Setenv("THRESHOLD", "0.7")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("PPROF_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.BackendPort)
	assert.Equal(t, 3.0, cfg.Data.Fold)
	assert.Equal(t, 0.7, cfg.Model.Threshold)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"fold":      {"FOLD": "2"},
		"threshold": {"THRESHOLD": "1.5"},
		"ports":     {"BACKEND_PORT": "8080", "FRONTEND_PORT": "8080"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
