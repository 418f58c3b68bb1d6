// Command fsmdraw works with state-diagram files: render them to SVG or
// PNG, convert between JSON and YAML, and inspect or validate them.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
