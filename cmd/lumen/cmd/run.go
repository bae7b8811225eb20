package cmd

import (
	"fmt"
	"os"

	"github.com/arrowhollow/lumen/pkg/lumen"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lumen file or expression",
	Long: `Execute a Lumen program from a file or inline expression.

Examples:
  # Run a script file
  lumen run script.lum

  # Evaluate an inline expression
  lumen run -e "print(1 + 2);"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	switch {
	case evalExpr != "":
		return runSource(evalExpr)
	case len(args) == 1:
		return runFile(args[0])
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}
}

// runRootCommand dispatches on the invocation shape: a single positional
// file argument runs that file to completion; with no argument, it starts
// the REPL.
func runRootCommand(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		return runFile(args[0])
	}
	return runREPL()
}

func runFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return runSource(string(content))
}

// runSource executes source end-to-end, printing any language error to
// stdout and exiting 1.
func runSource(source string) error {
	engine := lumen.New()
	if err := engine.RunString(source); err != nil {
		fmt.Println(engine.Format(err, source))
		os.Exit(1)
	}
	return nil
}
