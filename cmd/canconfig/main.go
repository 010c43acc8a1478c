// Package main is the canconfig command line tool: validate, inspect, and
// update a device's attribute configuration.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/canconfig/internal/attribute"
	"github.com/dshills/canconfig/internal/config"
	"github.com/dshills/canconfig/internal/schema"
)

var (
	defnFile string
	cfgFile  string
	section  string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "canconfig",
	Short:         "Inspect and update CANPi bridge configuration",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&defnFile, "defn", "canpi-config-defn.json", "attribute definition file")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "cfg", "canpi.cfg", "value store file")
	rootCmd.PersistentFlags().StringVar(&section, "section", "", "value store section (default: unnamed section)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
}

// newConfig builds a Config honoring the global flags.
func newConfig() (*config.Config, error) {
	opts := []config.Option{}
	if section != "" {
		opts = append(opts, config.WithSection(section))
	}
	return config.New(opts...)
}

// parseBehaviourFlag converts the --action flag value, tolerating lower
// case.
func parseBehaviourFlag(name string) (attribute.Behaviour, error) {
	switch name {
	case "edit":
		return attribute.BehaviourEdit, nil
	case "display":
		return attribute.BehaviourDisplay, nil
	case "hide":
		return attribute.BehaviourHide, nil
	}
	return attribute.ParseBehaviour(name)
}

// loadValidator compiles the schema selected by --schema, or the embedded
// one.
func loadValidator(path string) (*schema.Validator, error) {
	if path == "" {
		return schema.LoadEmbedded()
	}
	return schema.Compile(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
