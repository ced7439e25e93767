package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xiaolushuo/verify-project/configs"
	"github.com/xiaolushuo/verify-project/internal/config"
	"github.com/xiaolushuo/verify-project/internal/output"
	"github.com/xiaolushuo/verify-project/internal/ui"
)

func newConfigCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage the user and project configuration files.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/verify-project/config.yaml)
  3. Project config (.verify-project.yaml)
  4. Environment variables (VERIFY_PROJECT_*)
  5. Command-line flags`,
		Example: `  # Create user config from template
  verify-project config init

  # Show effective configuration
  verify-project config show

  # Print user config file path
  verify-project config path`,
		Annotations: map[string]string{
			lenientConfig: "true",
		},
	}

	cmd.AddCommand(newConfigInitCmd(s))
	cmd.AddCommand(newConfigShowCmd(s))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd(s *session) *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file from the template",
		Long: `Create the user configuration file from a template.

The file is created at ~/.config/verify-project/config.yaml
(or $XDG_CONFIG_HOME/verify-project/config.yaml if XDG_CONFIG_HOME is set).
With --project, .verify-project.yaml is created in the current directory
instead.

With --force an existing user config is backed up and upgraded: settings
are kept and options added in newer versions are filled with defaults.`,
		Example: `  # Create user config
  verify-project config init

  # Upgrade an existing user config
  verify-project config init --force

  # Create a project config
  verify-project config init --project`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{lenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := s.writer(cmd)
			if project {
				return s.runConfigInitProject(out, force)
			}
			return runConfigInit(out, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Upgrade or overwrite an existing configuration")
	cmd.Flags().BoolVar(&project, "project", false, "Create .verify-project.yaml in the current directory")

	return cmd
}

func newConfigShowCmd(s *session) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the configuration after merging all sources, or the contents of a
single source with --source.`,
		Example: `  # Show merged configuration
  verify-project config show

  # Show as JSON
  verify-project config show --json

  # Show only the user config
  verify-project config show --source user`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{lenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.runConfigShow(cmd, source)
		},
	}

	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, user, project, defaults")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print user config file path",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{lenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func (s *session) writer(cmd *cobra.Command) *output.Writer {
	out := cmd.OutOrStdout()
	mode, err := ui.ParseColorMode(s.cfg.Output.Color)
	if err != nil {
		mode = ui.ColorNever
	}
	return output.NewWithColor(out, ui.UseColor(mode, out))
}

func runConfigInit(out *output.Writer, force bool) error {
	configPath := config.GetUserConfigPath()

	lock, err := config.LockUserConfig()
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	if config.UserConfigExists() {
		if !force {
			out.Warning("User configuration already exists")
			out.Field("Location", configPath)
			out.Newline()
			out.Status("", "Use --force to upgrade with new defaults (preserves your settings)")
			return nil
		}
		return runConfigUpgrade(out, configPath)
	}

	configDir := config.GetUserConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(configPath, []byte(configs.UserConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out.Success("Created user configuration")
	out.Field("Location", configPath)
	out.Newline()
	out.Status("", "Next steps:")
	out.Status("", "  1. Edit the file to customize settings")
	out.Status("", "  2. Run 'verify-project config show' to verify")

	return nil
}

// runConfigUpgrade backs up the existing user config, fills in new defaults
// and rewrites it.
func runConfigUpgrade(out *output.Writer, configPath string) error {
	backupPath, err := config.BackupUserConfig()
	if err != nil {
		return fmt.Errorf("failed to backup config: %w", err)
	}

	existing, err := config.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load existing config: %w", err)
	}

	newFields := existing.MergeNewDefaults()
	if err := existing.WriteYAML(configPath); err != nil {
		return fmt.Errorf("failed to write upgraded config: %w", err)
	}

	out.Success("Configuration upgraded")
	out.Field("Location", configPath)
	out.Field("Backup", backupPath)
	out.Newline()

	if len(newFields) > 0 {
		out.Status("", "New options added with defaults:")
		for _, field := range newFields {
			out.Statusf("", "  - %s", field)
		}
	} else {
		out.Success("Your configuration is already up to date")
	}

	return nil
}

func (s *session) runConfigInitProject(out *output.Writer, force bool) error {
	path := filepath.Join(s.dir, config.ProjectConfigFile)

	if _, err := os.Stat(path); err == nil && !force {
		out.Warning("Project configuration already exists")
		out.Field("Location", path)
		out.Status("", "Use --force to overwrite it")
		return nil
	}

	if err := os.WriteFile(path, []byte(configs.ProjectConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write project config: %w", err)
	}

	out.Success("Created project configuration")
	out.Field("Location", path)
	return nil
}

func (s *session) runConfigShow(cmd *cobra.Command, source string) error {
	out := s.writer(cmd)

	var (
		cfg        *config.Config
		sourceDesc string
		err        error
	)

	switch source {
	case "merged":
		cfg, err = config.Load(s.dir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		sourceDesc = "merged (defaults + user + project + env)"

	case "user":
		path := config.GetUserConfigPath()
		if !config.UserConfigExists() {
			out.Warning("No user configuration file found")
			out.Field("Expected at", path)
			out.Status("", "Run 'verify-project config init' to create one")
			return nil
		}
		if cfg, err = config.ReadFile(path); err != nil {
			return err
		}
		sourceDesc = fmt.Sprintf("user (%s)", path)

	case "project":
		path := filepath.Join(s.dir, config.ProjectConfigFile)
		if _, statErr := os.Stat(path); statErr != nil {
			out.Warning("No project configuration file found")
			out.Field("Expected at", path)
			out.Status("", "Run 'verify-project config init --project' to create one")
			return nil
		}
		if cfg, err = config.ReadFile(path); err != nil {
			return err
		}
		sourceDesc = fmt.Sprintf("project (%s)", path)

	case "defaults":
		cfg = config.NewConfig()
		sourceDesc = "defaults (hardcoded)"

	default:
		return fmt.Errorf("invalid source: %s (use: merged, user, project, defaults)", source)
	}

	if s.jsonMode() {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	out.Field("Configuration source", sourceDesc)
	out.Code(string(data))
	return nil
}
