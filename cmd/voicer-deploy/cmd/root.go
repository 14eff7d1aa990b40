package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voicerhq/voicer-deploy/internal/config"
	"github.com/voicerhq/voicer-deploy/internal/logger"
	"github.com/voicerhq/voicer-deploy/internal/service/deployer"
	"github.com/voicerhq/voicer-deploy/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// logLevel sets the minimum log level for the run.
	logLevel string

	// rootCmd represents the base command for deploying the voicer platform.
	rootCmd = &cobra.Command{
		Use:   "voicer-deploy [service...]",
		Short: "Deploy the voicer platform and restart its services",
		Long: "Fetch the latest source, force-synchronize the install root to the remote " +
			"mainline tip, reinstall dependencies when the manifest changed, then restart " +
			"and verify the selected services. Without arguments the full canonical " +
			"service list is deployed.",
		Args: cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &deployer.Options{
				ConfigPath: configPath,
				Services:   args,
			}

			_, err := options.Run(ctx)

			return err
		},
	}
)

// Execute runs the voicer-deploy CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "minimum log level (debug, info, warn, error)")
}
