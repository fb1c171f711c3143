package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pagesmith/internal/config"
)

var (
	configureSets           []string
	configureYes            bool
	configurePrint          bool
	configureNonInteractive bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Create or edit the configuration file interactively or via flags",
	Long: `Interactively create or edit the Pagesmith configuration file (config.yaml by default).

Features:
- Interactive prompts for the Confluence server and credentials
- Apply key=value overrides via --set (e.g. --set confluence.base_url=https://wiki)
- Non-interactive scripting with --non-interactive --yes --set ...
- Print resulting YAML with --print instead of writing
`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().StringArrayVar(&configureSets, "set", nil, "Set a config field using dotted path (e.g. confluence.base_url=http://example)")
	configureCmd.Flags().BoolVar(&configureYes, "yes", false, "Automatically confirm saving changes")
	configureCmd.Flags().BoolVar(&configurePrint, "print", false, "Print resulting YAML instead of writing to file")
	configureCmd.Flags().BoolVar(&configureNonInteractive, "non-interactive", false, "Disable interactive prompts (use with --set)")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	path := configFile
	cfg, err := loadOrInitConfig(path)
	if err != nil {
		return err
	}

	// Apply flag mutations first (non-interactive layer)
	for _, kv := range configureSets {
		if err := applyConfigSet(cfg, kv); err != nil {
			return err
		}
	}

	if !configureNonInteractive {
		if err := promptConfluenceSection(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	if configurePrint {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}

	if !configureYes {
		confirm := false
		prompt := &survey.Confirm{Message: "Save configuration to " + path + "?", Default: true}
		if err := survey.AskOne(prompt, &confirm); err != nil {
			return err
		}
		if !confirm {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing written.")
			return nil
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
	return nil
}

// loadOrInitConfig reads an existing config or starts from an empty one.
func loadOrInitConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &config.Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func applyConfigSet(cfg *config.Config, kv string) error {
	key, value, found := strings.Cut(kv, "=")
	if !found {
		return fmt.Errorf("invalid --set %q, expected key=value", kv)
	}

	switch key {
	case "confluence.base_url":
		cfg.Confluence.BaseURL = value
	case "confluence.username":
		cfg.Confluence.Username = value
	case "confluence.password":
		cfg.Confluence.Password = value
	case "confluence.space":
		cfg.Confluence.Space = value
	case "confluence.space_is_key":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
		cfg.Confluence.SpaceIsKey = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func promptConfluenceSection(cfg *config.Config) error {
	qs := []*survey.Question{
		{Name: "base_url", Prompt: &survey.Input{Message: "Confluence Base URL", Default: cfg.Confluence.BaseURL}},
		{Name: "username", Prompt: &survey.Input{Message: "Confluence Username", Default: cfg.Confluence.Username}},
		{Name: "password", Prompt: &survey.Password{Message: "Confluence Password (leave blank to keep)"}},
		{Name: "space", Prompt: &survey.Input{Message: "Default Space Name (optional)", Default: cfg.Confluence.Space}},
	}
	answers := struct {
		BaseURL  string `survey:"base_url"`
		Username string `survey:"username"`
		Password string `survey:"password"`
		Space    string `survey:"space"`
	}{}

	if err := survey.Ask(qs, &answers); err != nil {
		return err
	}

	cfg.Confluence.BaseURL = answers.BaseURL
	cfg.Confluence.Username = answers.Username
	if answers.Password != "" {
		cfg.Confluence.Password = answers.Password
	}
	cfg.Confluence.Space = answers.Space
	return nil
}
