package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/fathomsec/fathom/config"
	"github.com/fathomsec/fathom/engine"
)

func runDNS(argv []string) error {
	fs := flag.NewFlagSet("dns", flag.ExitOnError)
	var common config.Common
	var args config.DNSArgs
	config.DefineCommonFlags(fs, &common)
	config.DefineDNSFlags(fs, &args)
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

	probes, err := config.BuildDNS(args)
	if err != nil {
		return err
	}

	pool := &engine.Pool{
		Threads: common.Threads,
		Resolve: engine.NewDNSResolver(args.Resolver),
	}

	progress := progressSink(common.NoProgressBar)
	results := resultsSink(common.Output)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, err = engine.Run(ctx, pool, probes, &engine.ClassifierConfig{}, common.ExitOnConnectionErrors, progress, results, logger)
	return err
}
