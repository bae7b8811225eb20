package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/arrowhollow/lumen/pkg/lumen"
)

// runREPL is the interactive mode: an ">>" prompt per line, `$quit` as
// the only meta-command, a hint when the user types bare `quit`/`exit`,
// and clean exit on end-of-input. One Engine persists across lines so
// declarations accumulate; an error aborts only the current line.
func runREPL() error {
	engine := lumen.New()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(">> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			continue
		case trimmed == "$quit":
			return nil
		case strings.HasPrefix(trimmed, "$"):
			fmt.Printf("unknown meta-command %q\n", trimmed)
			continue
		case trimmed == "quit" || trimmed == "exit":
			fmt.Println("type $quit to exit the REPL")
			continue
		}

		if err := engine.RunString(line); err != nil {
			fmt.Println(engine.Format(err, line))
		}
	}
}
