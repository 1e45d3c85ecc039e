// Capture power-consumption traces during digest computation on a hardware
// target. The capture mode, trace counts and device endpoints come from a
// YAML config file; traces and run metadata go to a SQLite database.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"otcapture"
	"otcapture/logger"
	"otcapture/scope"
	"otcapture/target"
	"otcapture/tracedb"
)

func main() {
	app := &cli.App{
		Name:  "capture",
		Usage: "capture power traces during SHA-3 digest computation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "cfg",
				Usage:    "capture configuration file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "trace database file",
				Value: "project.db",
			},
			&cli.StringFlag{
				Name:  "notes",
				Usage: "free-form notes stored with the capture metadata",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	cfg, err := otcapture.LoadConfig(cliCtx.String("cfg"))
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "capture")

	if cfg.Mode != otcapture.ModeFvsrBatch && cfg.NumSegments != 1 {
		log.Notice("num_segments needs to be 1 in non-batch mode. Setting num_segments=1.")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Noticef("Setting up capture %v, %d traces, %d segments", cfg.Mode, cfg.NumTraces, cfg.NumSegments)

	dev, err := target.NewDeviceFromURI(cfg.TargetURI)
	if err != nil {
		return fmt.Errorf("failed to connect to target : %v", err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Warningf("failed to close target : %v", err)
		}
	}()

	scp, err := scope.Dial(cfg.ScopeAddr, cfg.NumSegments, cfg.NumSamples)
	if err != nil {
		return fmt.Errorf("failed to connect to scope : %v", err)
	}
	defer func() {
		if err := scp.Close(); err != nil {
			log.Warningf("failed to close scope : %v", err)
		}
	}()

	store, err := tracedb.NewStore(cliCtx.String("db"))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warningf("failed to close trace database : %v", err)
		}
	}()

	// Ctrl-C aborts the loop between iterations; captured traces are kept.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := otcapture.NewCaptureLoop(cfg, dev, scp, store, log)
	if err := loop.Setup(); err != nil {
		return err
	}

	runErr := loop.Run(ctx)

	if err := store.WriteMetadata(cfg.Raw, cliCtx.String("notes")); err != nil {
		log.Warningf("failed to write metadata : %v", err)
	}

	if errors.Is(runErr, otcapture.ErrAbortRequested) {
		log.Notice("capture aborted by operator, captured traces saved")
		return nil
	}
	return runErr
}
