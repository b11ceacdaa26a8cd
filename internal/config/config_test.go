package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("BACKEND_BASE_URL", "http://backend.local:8000/")
	t.Setenv("SESSION_TTL", "90")
	t.Setenv("PAGE_LIMIT_TASKS", "10")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9100", cfg.Port)
	require.Equal(t, "http://backend.local:8000", cfg.BackendBaseURL)
	require.Equal(t, "http://backend.local:8000", cfg.BackendOrigin)
	require.Equal(t, 90*time.Second, cfg.SessionTTL)
	require.Equal(t, 10, cfg.PageLimits.Tasks)
	require.Equal(t, 5, cfg.PageLimits.Projects)
	require.Equal(t, 10, cfg.PageLimits.Roles)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("PAGE_LIMIT_REPORT", "ten")
	t.Setenv("SCREEN_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.PageLimits.Report)
	require.Equal(t, 30*time.Minute, cfg.ScreenTTL)
}
