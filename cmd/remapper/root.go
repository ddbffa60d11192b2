package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"remapper/internal/config"
	"remapper/internal/logging"
	"remapper/internal/session"
)

var (
	configPath string
	logLevel   string
	verbosity  int
	quiet      bool
	jarPath    string
)

var rootCmd = &cobra.Command{
	Use:   "remapper",
	Short: "Convert, invert, compose and check JVM name mappings",
	Long: `remapper manages the mappings between obfuscated and readable names of the
classes, fields, methods and parameters in a compiled jar.

Mappings are addressed as a format spec and a path. A spec is a format name,
optionally followed by a variant: "yaml", "yaml:directory", "mcp:delta".
Without a variant the format picks the one that fits the path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Profile file (json, yaml or toml); REMAPPER_* variables override it")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error (overrides -v and the profile)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress all logging")
}

// addJarFlag registers --jar on commands whose formats may need the archive.
func addJarFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&jarPath, "jar", "", "Jar the mappings belong to")
}

// level resolves the log level from the flags, falling back to the profile.
func level(cfg *config.Config) slog.Level {
	switch {
	case logLevel != "":
		return logging.LevelFromString(logLevel)
	case verbosity > 0 || quiet:
		return logging.LevelFromVerbosity(verbosity, quiet)
	default:
		return logging.LevelFromString(cfg.Logging.Level)
	}
}

// openSession loads the profile and starts a session logging to the
// command's error stream.
func openSession(cmd *cobra.Command) (*session.Session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), level(cfg), logging.Format(cfg.Logging.Format))

	return session.New(cfg, logger)
}
