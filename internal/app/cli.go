package app

import (
	"os"

	"github.com/urfave/cli/v2"
)

const (
	fInput  = "input"
	fOutput = "output"
	fWatch  = "watch"
	fQuiet  = "quiet"
)

// New returns the single-command CLI described in spec §6: a fixed input
// path (schedule.yaml) and output path (solution.csv), both overridable,
// an optional watch mode, and a quiet flag wired to the logger and
// spinner.
func New() *cli.App {
	return &cli.App{
		Name:  "scheduler",
		Usage: "Compute a staff work schedule via exact-cover (DLX) search",

		Writer:    os.Stdout,
		ErrWriter: os.Stderr,

		Flags: []cli.Flag{
			&cli.PathFlag{Name: fInput, Value: "schedule.yaml", Usage: "input constraint record"},
			&cli.PathFlag{Name: fOutput, Value: "solution.csv", Usage: "output solution grid"},
			&cli.BoolFlag{Name: fWatch, Usage: "re-run the full pipeline whenever the input file changes"},
			&cli.BoolFlag{Name: fQuiet, Usage: "suppress log and spinner output"},
		},

		Action: action,
	}
}
