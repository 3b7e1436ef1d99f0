package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mj1618/a11ybridge/internal/config"
	"github.com/mj1618/a11ybridge/internal/logging"
	"github.com/mj1618/a11ybridge/internal/output"
	"github.com/mj1618/a11ybridge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "a11ybridge",
	Short: "Drive accessibility trees through opaque handles",
	Long: `a11ybridge builds accessibility nodes and tree updates through opaque integer
handles and feeds them to headless macOS and Windows platform adapters, the way a
foreign caller would across a native boundary.`,
	SilenceUsage: true,
}

var (
	// cfg is the configuration in effect after flags are applied.
	cfg = config.Default()
	// logger writes to stderr; set up by the root pre-run.
	logger = zerolog.Nop()
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("platform", "", "Default adapter variant: macos, windows")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.Stderr(cfg.LogLevel, cfg.LogConsole)
		if err != nil {
			return err
		}
		logger = l

		format, err := output.ParseFormat(cfg.Format)
		if err != nil {
			return err
		}
		output.OutputFormat = format
		if pretty, _ := rootCmd.PersistentFlags().GetBool("pretty"); pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}

// loadConfig reads --config when given and lets explicit flags override it.
func loadConfig() (config.Config, error) {
	c := config.Default()
	flags := rootCmd.PersistentFlags()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		c = loaded
	}
	if flags.Changed("format") {
		c.Format, _ = flags.GetString("format")
	}
	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("platform") {
		c.Platform, _ = flags.GetString("platform")
		if err := config.ValidatePlatform(c.Platform); err != nil {
			return config.Config{}, err
		}
	}
	return c, nil
}
