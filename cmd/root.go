package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindslayer001/tracebug/internal/app"
	"github.com/mindslayer001/tracebug/internal/config"
	"github.com/mindslayer001/tracebug/internal/logging"
)

var (
	baseURLFlag string
	fileFlag    string
	profileFlag string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "tracebug",
	Short: "Send code snippets to a TraceBug backend for analysis",
	Long: `TraceBug is a terminal client for a code-analysis backend. Write or load a
snippet, send it, and read the analysis with highlighted, copyable code blocks.`,
	Run: func(cmd *cobra.Command, args []string) {
		runApplication(loadConfig())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "backend base URL, overrides the active profile")
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "profile to use for this run without saving it")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "write debug logs")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "load a source file into the editor on startup")

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}

// loadConfig loads the config and applies --profile for this run only
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if profileFlag != "" {
		if err := cfg.UseProfile(normalizeProfileName(profileFlag)); err != nil {
			log.Fatalf("%v", err)
		}
	}
	return cfg
}

// resolveBaseURL applies the --base-url flag over the configured value
func resolveBaseURL(cfg *config.Config) string {
	if baseURLFlag != "" {
		return baseURLFlag
	}
	return cfg.GetBaseURL()
}

func newLogger(cfg *config.Config) *zap.Logger {
	logger, err := logging.New(cfg.Dir(), verboseFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging disabled: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

func runApplication(cfg *config.Config) {
	logger := newLogger(cfg)

	application, err := app.NewApplication(cfg, app.Options{
		BaseURL: baseURLFlag,
		File:    fileFlag,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
