package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fsmdraw/pkg/diagfile"
	"fsmdraw/pkg/diagram"
)

var version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:     "fsmdraw",
	Short:   "fsmdraw — state diagram toolkit",
	Long:    "fsmdraw renders, converts and inspects state-diagram files (JSON or YAML).",
	Version: version,
}

func init() {
	rootCmd.SetVersionTemplate("fsmdraw {{ .Version }}\n")
	rootCmd.AddCommand(
		renderCmd(),
		convertCmd(),
		dotCmd(),
		infoCmd(),
		validateCmd(),
	)
}

// loadDiagram reads a diagram from a JSON or YAML file, by extension.
func loadDiagram(path string) (*diagram.Diagram, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return diagfile.ReadFile(path)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return diagfile.ParseYAML(data)
	}
	return nil, fmt.Errorf("unsupported input format %q (want .json, .yaml or .yml)", filepath.Ext(path))
}
