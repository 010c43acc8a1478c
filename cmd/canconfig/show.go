package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var actionFilter string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print current attribute values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := newConfig()
		if err != nil {
			return err
		}
		if err := cfg.LoadConfiguration(defnFile, cfgFile); err != nil {
			return err
		}

		set := cfg.All()
		if actionFilter != "" {
			b, err := parseBehaviourFlag(actionFilter)
			if err != nil {
				return err
			}
			set = cfg.Attributes(b)
		}

		for _, k := range set.Keys() {
			fmt.Printf("%s = %s\n", k, set[k].Current)
		}
		if unknown := cfg.Unrecognized(); len(unknown) > 0 {
			fmt.Printf("# %d value store keys have no definition: %v\n", len(unknown), unknown)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&actionFilter, "action", "", "only show attributes with this behaviour (edit, display, hide)")
}
