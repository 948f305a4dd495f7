package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ghostcheck/backend/internal/analysis"
	"ghostcheck/backend/internal/archive"
	"ghostcheck/backend/internal/extract"
	"ghostcheck/backend/pkg/config"
	"ghostcheck/backend/pkg/logger"
)

type options struct {
	format  string
	list    string
	limit   int
	workers int
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "inspect <export.zip|export-dir>",
		Short: "Find who doesn't follow you back in a data export",
		Long: `inspect reads a social media data export (zip file or extracted folder),
extracts every account list it can find and, when both followers and following
lists are present, reports ghosts (you follow, they don't), fans (they follow,
you don't) and mutuals. Nothing leaves your machine.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), args[0], opts, cmd.OutOrStdout())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", formatText, "output format: text, json or yaml")
	flags.StringVarP(&opts.list, "list", "l", "", "print a single collection, e.g. ghosts or followers_1")
	flags.IntVar(&opts.limit, "limit", 20, "usernames shown per collection in text output (0 for all)")
	flags.IntVar(&opts.workers, "workers", 0, "files processed concurrently (defaults to MAX_WORKERS)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log extraction progress to stderr")

	return cmd
}

func run(ctx context.Context, source string, opts *options, out io.Writer) error {
	if !validFormat(opts.format) {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	if err := logger.Init(cfg.Env, level); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Get()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	workers := cfg.MaxWorkers
	if opts.workers > 0 {
		workers = opts.workers
	}

	arc, err := archive.Open(source)
	if err != nil {
		return err
	}
	defer arc.Close()

	analyzer := analysis.NewAnalyzer(
		extract.New(extract.Options{ListFields: cfg.ListFields, ProfileBaseURL: cfg.ProfileBaseURL}),
		analysis.Options{Workers: workers, MaxEntryBytes: cfg.MaxEntryBytes()},
		log.Named("analysis"),
	)

	report, err := analyzer.Analyze(ctx, arc)
	if err != nil {
		var batchErr *analysis.BatchError
		if errors.As(err, &batchErr) {
			for _, d := range batchErr.Diagnostics {
				log.Debug(d.String())
			}
		}
		log.Warn("Analysis failed", zap.String("source", source), zap.Error(err))
		return err
	}

	if opts.list != "" {
		collection, ok := report.Collection(opts.list)
		if !ok {
			return fmt.Errorf("no collection named %q (available: %v)", opts.list, report.Names())
		}
		return writeCollection(out, opts.format, collection, opts.limit)
	}
	return writeReport(out, opts.format, report, opts.limit)
}
