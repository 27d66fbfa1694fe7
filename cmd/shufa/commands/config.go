package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/shufa/config"
	"github.com/teranos/shufa/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and validate shufa configuration",
	Long: `Display and check shufa configuration settings.

Configuration sources (later overrides earlier):
1. Default values
2. System config (/etc/shufa/config.toml)
3. User config (~/.shufa/config.toml)
4. Project config (./shufa.toml, searched up the directory tree)
5. Environment variables (SHUFA_* prefix; DEEPSEEK_API_KEY for the API key)
6. Command line flags

--config FILE replaces layers 2-4 with a single file.

Examples:
  shufa config show                 # Show current configuration
  shufa config show --format json   # Show configuration in JSON format
  shufa config where                # List the files being merged
  shufa config validate             # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the merged configuration. The gateway API key is masked.",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Args:  cobra.NoArgs,
	RunE:  runConfigWhere,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	redacted := cfg.Redacted()
	out := cmd.OutOrStdout()

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(redacted)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# shufa configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(redacted)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# shufa configuration\n%s", string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if path := flagString(cmd, "config"); path != "" {
		fmt.Fprintf(out, "Using --config %s (system, user and project files skipped)\n", path)
		return nil
	}

	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintf(out, "  2. [SYSTEM]   %s\n", config.SystemConfigPath)
	fmt.Fprintf(out, "  3. [USER]     ~/%s/config.toml\n", config.UserConfigDir)
	fmt.Fprintf(out, "  4. [PROJECT]  ./%s (searches up directories)\n", config.ProjectConfigName)
	fmt.Fprintf(out, "  5. [ENV]      %s_* environment variables\n", config.EnvPrefix)
	fmt.Fprintln(out)

	sources := config.Sources()
	if len(sources) == 0 {
		fmt.Fprintln(out, "No config files found; using defaults and environment only.")
		return nil
	}
	fmt.Fprintln(out, "Merged files:")
	for _, s := range sources {
		fmt.Fprintf(out, "  %s %s\n", pterm.Green("✓"), s)
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}
