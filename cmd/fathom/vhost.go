package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/fathomsec/fathom/config"
	"github.com/fathomsec/fathom/engine"
)

func runVhost(argv []string) error {
	fs := flag.NewFlagSet("vhost", flag.ExitOnError)
	var common config.Common
	var args config.VhostArgs
	config.DefineCommonFlags(fs, &common)
	config.DefineVhostFlags(fs, &args)
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

	probes, clientCfg, classifier, err := config.BuildVhost(args)
	if err != nil {
		return err
	}

	pool := &engine.Pool{
		Threads: common.Threads,
		Client:  engine.NewClient(*clientCfg),
	}

	progress := progressSink(common.NoProgressBar)
	results := resultsSink(common.Output)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, err = engine.Run(ctx, pool, probes, classifier, common.ExitOnConnectionErrors, progress, results, logger)
	return err
}
