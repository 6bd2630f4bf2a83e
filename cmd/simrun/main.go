// simrun instantiates a registered environment over the playback physics
// provider and drives its step loop, mirroring how the host simulator would
// drive a live scene.
package main

import (
	"context"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/viam-labs/simkit/config"
	"github.com/viam-labs/simkit/env"
	"github.com/viam-labs/simkit/registry"

	// registered environments
	_ "github.com/viam-labs/simkit/tasks/franka"
)

var logger = golog.NewDevelopmentLogger("simrun")

func main() {
	app := &cli.App{
		Name:            "simrun",
		Usage:           "run a registered simulation environment",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load the scene configuration from `FILE` instead of the built-in scene",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "environment `ID` to run (overrides the config)",
			},
			&cli.IntFlag{
				Name:  "steps",
				Value: 600,
				Usage: "number of environment steps to run",
			},
			&cli.BoolFlag{
				Name:  "realtime",
				Usage: "pace steps against the wall clock",
			},
		},
		Action: runAction,
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func runAction(c *cli.Context) error {
	ctx := c.Context

	var cfg *config.Config
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.FromFile(path); err != nil {
			return err
		}
	} else {
		cfg = config.FrankaCabinetConfig()
	}

	envID := cfg.Environment
	if override := c.String("env"); override != "" {
		envID = override
	}
	creator := registry.EnvironmentLookup(envID)
	if creator == nil {
		return errors.Errorf("no environment registered with id %q", envID)
	}

	runID := uuid.NewString()
	logger.Infow("starting run",
		"run_id", runID,
		"environment", envID,
		"instances", cfg.NumInstances,
		"dt", cfg.Sim.Dt,
		"decimation", cfg.Sim.Decimation,
	)

	e, err := creator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Close(context.Background()); err != nil {
			logger.Errorw("closing environment", "error", err)
		}
	}()
	if err := e.Reset(ctx); err != nil {
		return err
	}

	return runLoop(ctx, e, c.Int("steps"), c.Bool("realtime"), clock.New())
}

// runLoop drives steps environment steps, logging a summary once per
// simulated second.
func runLoop(ctx context.Context, e env.Environment, steps int, realtime bool, clk clock.Clock) error {
	data := e.Data()
	stepDt := 0.0
	logEvery := 1
	if b, ok := e.(*env.Batched); ok {
		stepDt = b.StepDt()
		if stepDt > 0 {
			logEvery = int(1/stepDt + 0.5)
			if logEvery < 1 {
				logEvery = 1
			}
		}
	}

	var ticker *clock.Ticker
	if realtime && stepDt > 0 {
		ticker = clk.Ticker(durationOf(stepDt))
		defer ticker.Stop()
	}

	for i := 1; i <= steps; i++ {
		if err := e.Step(ctx); err != nil {
			return err
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		if i%logEvery != 0 {
			continue
		}
		heading, err := data.HeadingW()
		if err != nil {
			return err
		}
		grav, err := data.ProjectedGravityB()
		if err != nil {
			return err
		}
		logger.Infow("step",
			"n", i,
			"sim_time_sec", data.SimTimestamp(),
			"heading_rad", heading.Data().([]float64)[0],
			"projected_gravity_z", grav.Data().([]float64)[2],
		)
	}
	logger.Infow("run complete", "steps", steps, "sim_time_sec", data.SimTimestamp())
	return nil
}

func durationOf(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
