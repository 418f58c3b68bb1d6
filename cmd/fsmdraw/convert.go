package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fsmdraw/pkg/diagfile"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a diagram between JSON and YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				uiBad.Fprintf(os.Stderr, "fsmdraw: %v\n", err)
				return err
			}

			var data []byte
			switch strings.ToLower(filepath.Ext(args[1])) {
			case ".json":
				data, err = diagfile.ToJSON(d, true)
				data = append(data, '\n')
			case ".yaml", ".yml":
				data, err = diagfile.ToYAML(d)
			default:
				err = fmt.Errorf("unsupported output format %q (want .json, .yaml or .yml)", filepath.Ext(args[1]))
			}
			if err == nil {
				err = os.WriteFile(args[1], data, 0644)
			}
			if err != nil {
				uiBad.Fprintf(os.Stderr, "fsmdraw: %v\n", err)
				return err
			}

			uiGood.Printf("wrote %s\n", args[1])
			return nil
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
