package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirechat-registry/internal/app"
	"github.com/vovakirdan/wirechat-registry/internal/config"
	wlog "github.com/vovakirdan/wirechat-registry/internal/log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wirechat-registry",
		Short:         "Channel-based chat server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd())
	return root
}

// serveFlags holds the serve command's flag values.
type serveFlags struct {
	configPath string
	overrides  config.Config
}

func (f *serveFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "path to config.yaml")
	flags.StringVar(&f.overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&f.overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&f.overrides.LogFormat, "log-format", "", "log format (console, json)")
	flags.DurationVar(&f.overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")
	flags.IntVar(&f.overrides.RateLimit, "rate-limit", 0, "inbound messages per connection per minute (0 disables)")
}

// apply layers the flags that were set on the command line over cfg.
func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	cfg.UpdateFrom(f.overrides)
	// UpdateFrom skips zero values, but an explicit --rate-limit 0 turns limiting off.
	if cmd.Flags().Changed("rate-limit") {
		cfg.RateLimit = f.overrides.RateLimit
	}
}

func newServeCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLog := wlog.New("info", "console")

			cfg, path, err := config.Load(bootLog, flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			flags.apply(cmd, &cfg)

			logger := wlog.New(cfg.LogLevel, cfg.LogFormat)
			application, err := app.New(&cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().Str("addr", cfg.Addr).Str("config", path).Int("rate_limit", cfg.RateLimit).Msg("starting wirechat registry")
			if err := application.Run(ctx); err != nil {
				return fmt.Errorf("server exited with error: %w", err)
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}
	flags.bind(cmd)

	return cmd
}
