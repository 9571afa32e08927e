package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fixitfast/adminseed/internal/config"
	"github.com/fixitfast/adminseed/internal/logging"
	"github.com/fixitfast/adminseed/internal/pipeline"
	"github.com/fixitfast/adminseed/internal/store"
)

const connectTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "adminseed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		source    string
		state     string
		mongoURI  string
		outDir    string
		cost      int
		noCSV     bool
		noXLSX    bool
		skipStore bool
	)

	cmd := &cobra.Command{
		Use:          "adminseed",
		Short:        "Provision per-city administrator accounts from a pincode reference CSV",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Best-effort, like the platform's other tooling.
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fl := cmd.Flags()
			if fl.Changed("source") {
				cfg.SourcePath = source
			}
			if fl.Changed("state") {
				cfg.TargetState = state
			}
			if fl.Changed("mongo-uri") {
				cfg.MongoURI = mongoURI
			}
			if fl.Changed("out-dir") {
				cfg.OutputDir = outDir
			}
			if fl.Changed("cost") {
				cfg.HashCost = cost
			}
			if noCSV {
				cfg.ExportCSV = false
			}
			if noXLSX {
				cfg.ExportXLSX = false
			}

			return run(cfg, skipStore)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "path to the pincode reference CSV")
	cmd.Flags().StringVar(&state, "state", "", "state to provision admins for")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for export artifacts")
	cmd.Flags().IntVar(&cost, "cost", 0, "bcrypt work factor")
	cmd.Flags().BoolVar(&noCSV, "no-csv", false, "skip the CSV export")
	cmd.Flags().BoolVar(&noXLSX, "no-xlsx", false, "skip the spreadsheet export")
	cmd.Flags().BoolVar(&skipStore, "skip-store", false, "do not persist, export only")

	return cmd
}

func run(cfg config.Config, skipStore bool) error {
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st store.Store
	if skipStore {
		logger.Info("persistence disabled by flag")
	} else {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		m, err := store.Connect(connectCtx, cfg.MongoURI, cfg.Database, cfg.Collection)
		cancel()
		if err != nil {
			// A dead store degrades the run to export-only rather than aborting.
			logger.Warn("store unavailable, continuing export-only", "error", err)
		} else {
			st = m
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
				defer cancel()
				if err := m.Close(closeCtx); err != nil {
					logger.Warn("close store", "error", err)
				}
			}()
		}
	}

	sum, err := pipeline.New(cfg, st, logger).Run(ctx)
	if err != nil {
		return err
	}

	printSummary(os.Stdout, sum)
	return nil
}

func printSummary(w io.Writer, sum pipeline.Summary) {
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Provisioning run %s\n", sum.RunID)
	fmt.Fprintf(w, "  Localities read:    %d (malformed rows skipped: %d)\n", sum.Localities, sum.RowsSkipped)
	fmt.Fprintf(w, "  Accounts generated: %d (skipped: %d, errors: %d)\n", sum.Synthesized, sum.SynthSkipped, sum.SynthErrors)
	if sum.StoreSkipped {
		fmt.Fprintln(w, "  Persistence:        skipped (store unavailable)")
	} else {
		fmt.Fprintf(w, "  Persistence:        inserted %d, duplicates %d, errors %d\n",
			sum.Store.Inserted, sum.Store.Duplicates, sum.Store.Errors)
	}
	if sum.CSVPath != "" {
		fmt.Fprintf(w, "  CSV export:         %s\n", sum.CSVPath)
	}
	if sum.XLSXPath != "" {
		fmt.Fprintf(w, "  XLSX export:        %s\n", sum.XLSXPath)
	}
	fmt.Fprintln(w, "============================================================")
}
