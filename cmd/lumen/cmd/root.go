package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lumen [file]",
	Short: "Lumen interpreter",
	Long: `lumen runs programs written in Lumen, a small dynamically-typed
scripting language with C-family syntax: first-class functions and
closures, dynamic values, arrays, and dicts.

Given a file argument, lumen executes it to completion and exits 0 on
success or 1 on the first language error. Given no argument, it starts an
interactive read-evaluate-print loop.`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runRootCommand,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
