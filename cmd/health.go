package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindslayer001/tracebug/internal/backend"
	"github.com/mindslayer001/tracebug/internal/core"
)

const healthTimeout = 10 * time.Second

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		logger := newLogger(cfg)
		defer func() { _ = logger.Sync() }()

		client := backend.NewClient(resolveBaseURL(cfg), healthTimeout, logger)
		return checkHealth(cmd.Context(), cmd.OutOrStdout(), client, logger)
	},
}

func checkHealth(ctx context.Context, out io.Writer, client *backend.Client, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	status, err := client.Health(ctx)
	if err != nil {
		logger.Warn("health check failed", zap.String("base_url", client.BaseURL()), zap.Error(err))
		return fmt.Errorf("%s: %s", client.BaseURL(), core.ErrorMessage(err))
	}

	fmt.Fprintf(out, "%s: %s\n", client.BaseURL(), status.Message)
	return nil
}

func init() {
	healthCmd.SilenceUsage = true
	rootCmd.AddCommand(healthCmd)
}
