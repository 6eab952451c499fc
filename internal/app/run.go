package app

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"shift-scheduler/internal/builder"
	"shift-scheduler/internal/config"
	"shift-scheduler/internal/core"
	"shift-scheduler/internal/emitter"
	"shift-scheduler/internal/normalizer"
	"shift-scheduler/internal/solver"
	"shift-scheduler/internal/validator"
)

// action orchestrates the full pipeline: load -> normalise -> build ->
// solve -> emit. A ConfigError or internal error surfaces as a non-zero
// exit (via the returned error); infeasibility prints "no solution" and
// exits 0 (spec §7).
func action(c *cli.Context) error {
	quiet := c.Bool(fQuiet)
	if quiet {
		os.Setenv("SCHEDULER_SILENT", "1")
	}
	logger := core.NewDefaultLogger()

	inputPath := c.Path(fInput)
	outputPath := c.Path(fOutput)

	run := func() error {
		return solveOnce(logger, inputPath, outputPath, quiet)
	}

	if !c.Bool(fWatch) {
		return run()
	}

	mgr := config.NewManager(logger)
	stop := make(chan struct{})
	if err := mgr.Watch(inputPath, stop, func() {
		if err := run(); err != nil {
			logger.Error("re-solve failed: %v", err)
		}
	}); err != nil {
		return err
	}

	if err := run(); err != nil {
		return err
	}

	select {}
}

func solveOnce(logger *core.Logger, inputPath, outputPath string, quiet bool) error {
	mgr := config.NewManager(logger)
	schema, err := mgr.Load(inputPath)
	if err != nil {
		return err
	}

	constraints, err := normalizer.Normalize(schema)
	if err != nil {
		return err
	}

	matrix := builder.New(constraints, logger).Build()
	v := validator.New(constraints)

	spin := core.NewSpinner("solving...", quiet || core.IsSilent())
	spin.Start()

	symbols, ok := solver.Solve(matrix, v, logger)

	spin.Stop(ok)

	if !ok {
		fmt.Println("no solution")
		return nil
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer out.Close()

	if err := emitter.Emit(out, constraints, symbols); err != nil {
		return fmt.Errorf("cannot write solution: %w", err)
	}

	logger.Info("wrote solution to %s", outputPath)
	return nil
}
