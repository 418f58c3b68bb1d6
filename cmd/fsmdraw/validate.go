package main

import (
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input>",
		Short: "Check a diagram file for structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err == nil {
				err = d.Validate()
			}
			if err != nil {
				uiBad.Printf("%s: %v\n", args[0], err)
				return err
			}
			uiGood.Printf("%s: ok", args[0])
			uiSubtle.Printf("  (%d nodes, %d links)\n", len(d.Nodes), len(d.Links))
			return nil
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
