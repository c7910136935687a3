package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 24*time.Hour, cfg.LocalTTL)
	require.True(t, cfg.StrictAnswers)
	require.False(t, cfg.OIDC.Enabled())
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("MINDCONNECT_DATABASE_DRIVER", "sqlite")
	t.Setenv("MINDCONNECT_AUTH_REFRESH_TIMEOUT", "3s")
	t.Setenv("MINDCONNECT_ASSESSMENT_STRICT_QUESTIONS", "false")
	t.Setenv("ISSUER_URL", "https://id.example.com/")
	t.Setenv("MINDCONNECT_OIDC_CLIENT_ID", "client")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.ServerPort)
	require.Equal(t, "db.internal", cfg.DBHost)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, 3*time.Second, cfg.RefreshTimeout)
	require.False(t, cfg.StrictAnswers)
	require.Equal(t, "https://id.example.com", cfg.OIDC.IssuerURL)
	require.True(t, cfg.OIDC.Enabled())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindconnect.yaml")
	content := "server:\n  port: \"7000\"\ndatabase:\n  driver: mysql\nlog:\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.ServerPort)
	require.Equal(t, "mysql", cfg.DBDriver)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("MINDCONNECT_DATABASE_DRIVER", "oracle")
	_, err := Load("")
	require.Error(t, err)
}
