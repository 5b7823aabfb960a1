package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, resolved, err := Load(nil, path)
	req.NoError(err)
	req.Equal(path, resolved)
	req.Equal(Default(), cfg)
	req.NoError(cfg.Validate())

	_, err = os.Stat(path)
	req.NoError(err)

	// The written file round-trips through viper.
	again, _, err := Load(nil, path)
	req.NoError(err)
	req.Equal(Default(), again)
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	req.NoError(os.WriteFile(path, []byte("addr: \":9000\"\nsend_buffer: 4\nshutdown_timeout: 2s\n"), 0o600))
	t.Setenv("WIRECHAT_SEND_BUFFER", "16")

	cfg, _, err := Load(nil, path)
	req.NoError(err)
	req.Equal(":9000", cfg.Addr)
	req.Equal(16, cfg.SendBuffer)
	req.Equal(2*time.Second, cfg.ShutdownTimeout)
	req.Equal("info", cfg.LogLevel)
}

func TestUpdateFromKeepsZeroValues(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":1", LogLevel: "debug"})

	require.Equal(t, ":1", cfg.Addr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, Default().SendBuffer, cfg.SendBuffer)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.SendBuffer = 0
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Addr = ""
	require.Error(t, cfg.Validate())
}
