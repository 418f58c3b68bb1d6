package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fsmdraw/pkg/diagram"
)

func infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <input>",
		Short: "Show diagram statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				uiBad.Fprintf(os.Stderr, "fsmdraw: %v\n", err)
				return err
			}

			var transitions, selfLoops, entries, accepting int
			for _, l := range d.Links {
				switch l.(type) {
				case *diagram.Transition:
					transitions++
				case *diagram.SelfTransition:
					selfLoops++
				case *diagram.EntryArrow:
					entries++
				}
			}
			shapes := make(map[diagram.Shape]int)
			for _, n := range d.Nodes {
				shapes[n.Shape]++
				if n.Accept {
					accepting++
				}
			}

			uiBrand.Printf("%s\n", args[0])
			fmt.Printf("  Nodes:        %d (%d accepting)\n", len(d.Nodes), accepting)
			for shape, count := range shapes {
				uiSubtle.Printf("    %-10s  %d\n", shape.String(), count)
			}
			fmt.Printf("  Transitions:  %d\n", transitions)
			fmt.Printf("  Self loops:   %d\n", selfLoops)
			fmt.Printf("  Entry marks:  %d\n", entries)
			return nil
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
