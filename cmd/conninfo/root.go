package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/k0sproject/conninfo/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var settings = viper.New()

var logger log.Logger = log.Null

var rootCmd = &cobra.Command{
	Use:   "conninfo",
	Short: "SSH connection info builder",
	Long: `conninfo resolves the authentication methods and the forwarding proxy
for SSH hosts described in a YAML hosts file.

Flags can also be set with CONNINFO_ prefixed environment variables,
for example CONNINFO_LOG_LEVEL=debug.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initLogging,
}

func init() {
	rootCmd.PersistentFlags().String("config", "conninfo.yaml", "hosts file")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("trace", false, "enable trace logging")

	settings.SetEnvPrefix("CONNINFO")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	_ = settings.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(inspectCmd, proxyKindCmd)
}

func initLogging(_ *cobra.Command, _ []string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(settings.GetString("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logger = log.NewText(os.Stderr, lvl)
	if settings.GetBool("trace") {
		log.SetTraceLogger(log.NewText(os.Stderr, slog.LevelDebug))
	}
	return nil
}
