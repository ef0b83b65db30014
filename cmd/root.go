package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"status-page/internal/config"
	"status-page/internal/statuspage"
	"status-page/internal/storage"
)

var (
	cfgFile  string
	cfg      *config.Config
	provider storage.Provider
)

// Commands that must run without configuration or storage.
const skipInitAnnotation = "skip-init"

var rootCmd = &cobra.Command{
	Use:   "status-page",
	Short: "Component status page",
	Long:  `A status page service tracking daily working and outage reports of components.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if _, ok := cmd.Annotations[skipInitAnnotation]; ok {
			return
		}

		// Initialize logger with minimal output for CLI commands
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		})))

		// Load environment variables from .env if present
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to load .env file", "error", err)
		}

		// Initialize configuration
		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}

		// Initialize storage provider
		provider, err = storage.NewProvider(&cfg.Storage)
		if err != nil {
			slog.Error("Failed to initialize storage provider", "error", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Cleanup
		if provider != nil {
			provider.Close()
		}
	},
}

// newService builds the status service from the loaded configuration.
func newService() *statuspage.Service {
	return statuspage.NewService(provider, statuspage.Options{
		WindowDays: cfg.WindowDays,
		CacheTTL:   cfg.CacheTTL,
	})
}

// fail prints an error for the CLI user and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	if provider != nil {
		provider.Close()
	}
	os.Exit(1)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./instance/config.yaml)")
}
