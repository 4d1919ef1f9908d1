// Command gilinspect is a developer tool that builds a small in-memory
// fixture module, runs it through Sema and GIL generation, and prints
// the resulting IR and diagnostics. It has no lexer or parser wired in
// — it drives this repository's own pipeline on hand-built AST rather
// than being an end-user entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/diag"
	"github.com/glu-lang/glu/gil"
	"github.com/glu-lang/glu/passmgr"
	"github.com/glu-lang/glu/sema"
)

func main() {
	cmd := &cli.Command{
		Name:  "gilinspect",
		Usage: "lower a built-in fixture module through Sema and GIL and print the result",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "disable-pass",
				Usage: "pass name to skip",
			},
			&cli.StringSliceFlag{
				Name:  "print-before",
				Usage: "pass name to dump GIL before running",
			},
			&cli.StringSliceFlag{
				Name:  "print-after",
				Usage: "pass name to dump GIL after running",
			},
			&cli.BoolFlag{
				Name:  "print-before-each",
				Usage: "dump GIL before every pass",
			},
			&cli.BoolFlag{
				Name:  "print-after-each",
				Usage: "dump GIL after every pass",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable ANSI highlighting of the final module",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	c := ast.NewContext()
	module := buildFixtureModule(c)

	diags := diag.NewBag()
	if ok := sema.Check(c, module, diags); !ok {
		printDiagnostics(diags, useColor(cmd))
		errs := 0
		for _, d := range diags.All() {
			if d.Severity == diag.SeverityError {
				errs++
			}
		}
		return fmt.Errorf("sema reported %d error(s)", errs)
	}
	printDiagnostics(diags, useColor(cmd))

	m := gil.Generate(c.Types, module)

	cfg := passmgr.Config{
		DisablePass: toSet(cmd.StringSlice("disable-pass")),
		PrintBefore: toSet(cmd.StringSlice("print-before")),
		PrintAfter:  toSet(cmd.StringSlice("print-after")),

		PrintBeforeEach: cmd.Bool("print-before-each"),
		PrintAfterEach:  cmd.Bool("print-after-each"),
		Writer:          os.Stdout,
	}
	mgr := passmgr.NewManager(cfg, passmgr.EraseCopyOnStructExtract())
	m = mgr.Run(m)

	fmt.Print(colorizeGIL(gil.Print(m), useColor(cmd)))
	return nil
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func useColor(cmd *cli.Command) bool {
	if cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func printDiagnostics(bag *diag.Bag, color bool) {
	for _, d := range bag.All() {
		fmt.Fprintln(os.Stderr, formatDiagnostic(d, color))
	}
}
