// Package main implements the main entry point for a Nintendo DS ROM loader
package main

import (
	"context"
	"errors"
	"os"

	"github.com/patois/NDSLdr/internal/cli"
	"github.com/patois/NDSLdr/internal/config"
	"github.com/patois/NDSLdr/internal/fileprocessor"
	"github.com/patois/NDSLdr/internal/loader"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			logger.Info("Operation cancelled")
		case errors.Is(err, loader.ErrAborted):
			logger.Info("Load aborted")
		default:
			logger.Error("Loading failed", log.Err(err))
		}
		os.Exit(1)
	}
}
