package main

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	logLevel  *string
	logFormat *string
}{}

// logger writes diagnostics to stderr so that they never mix with the results on stdout.
var logger = bolt.New(bolt.NewConsoleHandler(os.Stderr)).SetLevel(bolt.WARN)

var rootCmd = &cobra.Command{
	Use:   "noam",
	Short: "Build, transform and examine finite automata, regular expressions and grammars",
	Long: `noam provides the following features:
- Converts and minimizes finite automata, and combines them with the regular operations.
- Decides emptiness, infiniteness, equivalence and inclusion of their languages.
- Builds automata from regex trees, and derives and classifies grammars.
- Compiles a DFA into a portable transition table.`,
	PersistentPreRunE: setUpLogger,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func init() {
	rootFlags.logLevel = rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace|debug|info|warn|error)")
	rootFlags.logFormat = rootCmd.PersistentFlags().String("log-format", "console", "log format (console|json)")
}

func setUpLogger(cmd *cobra.Command, args []string) error {
	lv, err := parseLogLevel(*rootFlags.logLevel)
	if err != nil {
		return err
	}
	var handler bolt.Handler
	switch *rootFlags.logFormat {
	case "console":
		handler = bolt.NewConsoleHandler(os.Stderr)
	case "json":
		handler = bolt.NewJSONHandler(os.Stderr)
	default:
		return fmt.Errorf("invalid log format: %v", *rootFlags.logFormat)
	}
	logger = bolt.New(handler).SetLevel(lv)
	return nil
}

func parseLogLevel(s string) (bolt.Level, error) {
	switch s {
	case "trace":
		return bolt.TRACE, nil
	case "debug":
		return bolt.DEBUG, nil
	case "info":
		return bolt.INFO, nil
	case "warn":
		return bolt.WARN, nil
	case "error":
		return bolt.ERROR, nil
	}
	return bolt.INFO, fmt.Errorf("invalid log level: %v", s)
}

func Execute() error {
	return rootCmd.Execute()
}
