// Package cmd provides the CLI commands for javasvc.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Flag names, also read from JAVASVC_* environment variables.
const (
	flagDir      = "dir"
	flagJava     = "java"
	flagLogLevel = "log-level"
	flagDryRun   = "dry-run"
)

// settings holds the tool's own flags merged with the environment.
var settings = viper.New()

var rootCmd = &cobra.Command{
	Use:   "javasvc install|uninstall",
	Short: "Register a Java application as a Windows service",
	Long: `javasvc registers the jar configured in config.properties (or
config.yaml) as a Windows service through the JavaService wrapper.

Run it from the directory holding the configuration file, the jar and the
JavaService-32bit.exe / JavaService-64bit.exe executables:

  javasvc install     remove any previous registration, install and start
  javasvc uninstall   stop the service and delete its registration`,
	Version:      Version,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Printf("invalid argument %q, use install or uninstall\n\n", args[0])
		}
		_ = cmd.Usage()
	},
}

// printUnexpectedArgs prints the usage of cmd when it was given positional
// arguments, which no command takes. The caller then returns without side
// effects.
func printUnexpectedArgs(cmd *cobra.Command, args []string) bool {
	if len(args) == 0 {
		return false
	}
	cmd.Printf("unexpected argument %q\n\n", args[0])
	_ = cmd.Usage()
	return true
}

// Execute runs the root command. An interrupt cancels the command that is
// running and skips the rest of its script.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.EnableCaseInsensitive = true

	rootCmd.SetVersionTemplate(fmt.Sprintf("javasvc version {{.Version}}\ncommit: %s\nbuilt: %s\n", Commit, BuildDate))

	flags := rootCmd.PersistentFlags()
	flags.String(flagDir, "", "directory holding the configuration and the jar (default: working directory)")
	flags.String(flagJava, "", "java binary to inspect (default: $JAVA_HOME/bin/java, then java on PATH)")
	flags.String(flagLogLevel, "info", "log level: debug, info, warn or error")
	flags.Bool(flagDryRun, false, "log the service commands without running them")

	settings.SetEnvPrefix("JAVASVC")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	if err := settings.BindPFlags(flags); err != nil {
		panic(err)
	}
}
