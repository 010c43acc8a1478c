package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/canconfig/internal/definition"
)

var schemaFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a definition file against its schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		validator, err := loadValidator(schemaFile)
		if err != nil {
			return err
		}

		loader := definition.NewLoader(validator)
		set, err := loader.LoadFile(defnFile)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d attributes OK\n", defnFile, len(set))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&schemaFile, "schema", "", "schema file (default: embedded schema)")
}
