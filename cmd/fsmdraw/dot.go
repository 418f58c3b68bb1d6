package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fsmdraw/pkg/diagfile"
)

func dotCmd() *cobra.Command {
	var (
		output string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "dot <input>",
		Short: "Generate Graphviz DOT output",
		Long:  "Generate Graphviz DOT output.\n\nExample:\n  fsmdraw dot machine.json | dot -Tpng -o machine.png",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				uiBad.Fprintf(os.Stderr, "fsmdraw: %v\n", err)
				return err
			}
			out := diagfile.GenerateDOT(d, title)
			if output == "" {
				fmt.Print(out)
				return nil
			}
			if err := os.WriteFile(output, []byte(out), 0644); err != nil {
				uiBad.Fprintf(os.Stderr, "fsmdraw: %v\n", err)
				return err
			}
			uiGood.Printf("wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&title, "title", "", "Graph title")
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
