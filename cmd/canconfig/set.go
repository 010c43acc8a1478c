package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/canconfig/internal/attribute"
)

var noBackup bool

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one attribute's current value and write the store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		cfg, err := newConfig()
		if err != nil {
			return err
		}
		if err := cfg.LoadConfiguration(defnFile, cfgFile); err != nil {
			return err
		}

		attr, ok := cfg.Attribute(key)
		if !ok {
			return fmt.Errorf("no attribute %q in %s", key, defnFile)
		}
		if attr.Action != attribute.BehaviourEdit {
			return fmt.Errorf("attribute %q is not editable", key)
		}
		if ok, err := attr.MatchesFormat(value); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("value %q does not match format %q", value, attr.Format)
		}

		if err := cfg.SetCurrent(key, value); err != nil {
			return err
		}
		return cfg.Write(cfgFile, !noBackup)
	},
}

func init() {
	setCmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the timestamped backup before writing")
}
