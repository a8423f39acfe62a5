package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/fathomsec/fathom/config"
	"github.com/fathomsec/fathom/engine"
)

func runFuzz(argv []string) error {
	fs := flag.NewFlagSet("fuzz", flag.ExitOnError)
	var common config.Common
	var args config.FuzzArgs
	config.DefineCommonFlags(fs, &common)
	config.DefineFuzzFlags(fs, &args)
	if err := fs.Parse(argv); err != nil {
		return err
	}
	if err := config.LoadFileDefaults(common.ConfigFile, &common); err != nil {
		return err
	}
	logger := newLogger(common.Verbosity)
	if !common.NoBanner {
		printBanner()
	}

	probes, client, classifier, csrf, err := config.BuildFuzz(args, common.Threads)
	if err != nil {
		return err
	}

	pool := &engine.Pool{
		Threads: common.Threads,
		Client:  client,
		CSRF:    csrf,
	}

	progress := progressSink(common.NoProgressBar)
	results := resultsSink(common.Output)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, err = engine.Run(ctx, pool, probes, classifier, common.ExitOnConnectionErrors, progress, results, logger)
	return err
}
