package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wirechat-registry/internal/config"
)

func parseServeFlags(t *testing.T, args ...string) (*serveFlags, *cobra.Command) {
	t.Helper()

	var flags serveFlags
	cmd := &cobra.Command{Use: "serve"}
	flags.bind(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return &flags, cmd
}

func TestServeFlagsRateLimitZeroDisablesLimiting(t *testing.T) {
	req := require.New(t)
	flags, cmd := parseServeFlags(t, "--rate-limit", "0", "--addr", ":9000")

	cfg := config.Default()
	cfg.RateLimit = 300
	flags.apply(cmd, &cfg)

	req.Zero(cfg.RateLimit)
	req.Equal(":9000", cfg.Addr)
	req.NoError(cfg.Validate())
}

func TestServeFlagsUnsetKeepLoadedValues(t *testing.T) {
	req := require.New(t)
	flags, cmd := parseServeFlags(t, "--shutdown-timeout", "2s")

	cfg := config.Default()
	cfg.RateLimit = 300
	flags.apply(cmd, &cfg)

	req.Equal(300, cfg.RateLimit)
	req.Equal(2*time.Second, cfg.ShutdownTimeout)
	req.Equal(config.Default().Addr, cfg.Addr)
}
