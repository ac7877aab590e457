package cmd

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/mindslayer001/tracebug/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage backend profiles",
	Long:  `Manage backend profiles for local, staging and hosted TraceBug servers.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			printProfile(cfg.Profiles[name], "    ")
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := normalizeProfileName(args[0])
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		printProfile(profile, "")
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}
		profileName = normalizeProfileName(profileName)

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		profile, err := promptProfile(config.Profile{BaseURL: config.DefaultBaseURL})
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = profile

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName, err := profileArgOrSelect(cfg, args, "Select profile to edit", "")
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		profile, err = promptProfile(profile)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		cfg.Profiles[profileName] = profile

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName, err := profileArgOrSelect(cfg, args, "Select profile to delete", "")
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		delete(cfg.Profiles, profileName)

		// The last profile is replaced by a fresh default
		if len(cfg.Profiles) == 0 {
			cfg.Profiles[config.DefaultProfile] = config.Profile{BaseURL: config.DefaultBaseURL}
		}
		if cfg.ActiveProfile == profileName {
			cfg.ActiveProfile = cfg.ProfileNames()[0]
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if len(args) == 0 && len(cfg.Profiles) < 2 {
			fmt.Println("No other profiles available to switch to")
			return
		}

		profileName, err := profileArgOrSelect(cfg, args, "Select profile to switch to", cfg.ActiveProfile)
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		if err := cfg.UseProfile(profileName); err != nil {
			log.Fatalf("%v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

// normalizeProfileName lowercases names; config keys are case-insensitive
func normalizeProfileName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// profileArgOrSelect returns the name from args or lets the user pick one,
// leaving out exclude
func profileArgOrSelect(cfg *config.Config, args []string, label, exclude string) (string, error) {
	if len(args) > 0 {
		return normalizeProfileName(args[0]), nil
	}

	names := make([]string, 0, len(cfg.Profiles))
	for _, name := range cfg.ProfileNames() {
		if name != exclude {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", errors.New("no profiles available")
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	return name, err
}

func promptProfile(current config.Profile) (config.Profile, error) {
	baseURLPrompt := promptui.Prompt{
		Label:    "Base URL",
		Default:  current.BaseURL,
		Validate: validateBaseURL,
	}
	baseURL, err := baseURLPrompt.Run()
	if err != nil {
		return current, err
	}

	timeoutPrompt := promptui.Prompt{
		Label:    "Request timeout in seconds (0 for none)",
		Default:  strconv.Itoa(current.TimeoutSeconds),
		Validate: validateTimeout,
	}
	timeout, err := timeoutPrompt.Run()
	if err != nil {
		return current, err
	}
	seconds, _ := strconv.Atoi(strings.TrimSpace(timeout))

	return config.Profile{
		BaseURL:        strings.TrimSpace(baseURL),
		TimeoutSeconds: seconds,
	}, nil
}

func validateBaseURL(input string) error {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("base URL must start with http:// or https://")
	}
	if u.Host == "" {
		return errors.New("base URL needs a host")
	}
	return nil
}

func validateTimeout(input string) error {
	seconds, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return errors.New("timeout must be a whole number of seconds")
	}
	if seconds < 0 {
		return errors.New("timeout cannot be negative")
	}
	return nil
}

func printProfile(profile config.Profile, indent string) {
	fmt.Printf("%sBase URL: %s\n", indent, profile.BaseURL)
	timeout := "none"
	if profile.TimeoutSeconds > 0 {
		timeout = fmt.Sprintf("%ds", profile.TimeoutSeconds)
	}
	fmt.Printf("%sTimeout: %s\n", indent, timeout)
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
