package cmd

import (
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindslayer001/tracebug/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the client",
	Long:  `Switch to the specified profile and immediately start the TraceBug client.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := strings.ToLower(args[0])

		// Load config
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if err := cfg.UseProfile(profileName); err != nil {
			log.Fatalf("%v", err)
		}

		// Save config with new active profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runApplication(cfg)
	},
}

func init() {
	useCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "load a source file into the editor on startup")
	rootCmd.AddCommand(useCmd)
}
