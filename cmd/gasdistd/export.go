package main

import (
	"github.com/spf13/cobra"
)

// ExportCmd dumps the app state in a form accepted as genesis.json.
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export state to JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := getCmdContext(cmd)
			gapp, db, err := c.openApp()
			if err != nil {
				return err
			}
			defer db.Close()

			exported, err := gapp.ExportAppState()
			if err != nil {
				return err
			}
			return printJSON(cmd, exported)
		},
	}
}
