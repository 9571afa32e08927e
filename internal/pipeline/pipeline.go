// Package pipeline orchestrates one provisioning run: read the reference
// feed, synthesize credentials, persist to the store and export the one-time
// credential sheet.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/fixitfast/adminseed/internal/admin"
	"github.com/fixitfast/adminseed/internal/config"
	"github.com/fixitfast/adminseed/internal/export"
	"github.com/fixitfast/adminseed/internal/refdata"
	"github.com/fixitfast/adminseed/internal/store"
)

// Summary reports what one provisioning run did.
type Summary struct {
	RunID        string
	Localities   int
	RowsSkipped  int
	Synthesized  int
	SynthSkipped int
	SynthErrors  int
	Store        store.Result
	StoreSkipped bool
	CSVPath      string
	XLSXPath     string
}

// Runner executes the provisioning pipeline. A nil store degrades the run to
// export-only; export failures never undo persistence results.
type Runner struct {
	cfg    config.Config
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// New builds a runner. st may be nil when the store is unavailable.
func New(cfg config.Config, st store.Store, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, store: st, logger: logger, now: time.Now}
}

// Run processes the whole batch sequentially: each locality is synthesized to
// completion before the next, and persistence runs before export so the sheet
// always reflects the full in-memory batch.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: uuid.NewString()[:8]}
	logger := r.logger.With("run_id", sum.RunID)

	src := refdata.NewSource(r.cfg.SourcePath, r.cfg.TargetState, logger)
	res, err := src.Load(ctx)
	if err != nil {
		if errors.Is(err, refdata.ErrSourceNotFound) {
			logger.Error("reference source missing", "path", r.cfg.SourcePath)
			return sum, nil
		}
		return sum, fmt.Errorf("load reference data: %w", err)
	}
	sum.Localities = len(res.Localities)
	sum.RowsSkipped = res.Skipped
	logger.Info("reference data loaded",
		"localities", sum.Localities, "rows_skipped", sum.RowsSkipped, "state", r.cfg.TargetState)

	if sum.Localities == 0 {
		logger.Warn("no localities to process")
		return sum, nil
	}

	password := r.cfg.SharedPassword
	if password == "" {
		password, err = admin.GeneratePassword(r.cfg.PasswordLength)
		if err != nil {
			return sum, fmt.Errorf("generate shared password: %w", err)
		}
		logger.Info("generated shared password for this run", "length", r.cfg.PasswordLength)
	}

	synth := admin.NewSynthesizer(r.cfg.EmailDomain, password, r.cfg.HashCost, logger)
	accounts := make([]admin.Account, 0, sum.Localities)
	for _, loc := range res.Localities {
		acc, err := synth.Synthesize(loc)
		switch {
		case err == nil:
			accounts = append(accounts, acc)
		case errors.Is(err, admin.ErrSkipped):
			sum.SynthSkipped++
			logger.Debug("locality skipped", "city", loc.City, "district", loc.District)
		default:
			sum.SynthErrors++
			logger.Error("synthesize admin", "city", loc.City, "error", err)
		}
	}
	sum.Synthesized = len(accounts)

	if r.store != nil {
		if err := r.store.EnsureIndexes(ctx); err != nil {
			logger.Warn("ensure store indexes", "error", err)
		}
		sum.Store = store.InsertAll(ctx, r.store, accounts, logger)
	} else {
		sum.StoreSkipped = true
		logger.Warn("store unavailable, persistence skipped")
	}

	stamp := r.now().Format("20060102_150405")
	if r.cfg.ExportCSV {
		path := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("admins_%s_%s.csv", stamp, sum.RunID))
		if err := export.WriteCSV(path, accounts); err != nil {
			logger.Error("csv export failed", "path", path, "error", err)
		} else {
			sum.CSVPath = path
			logger.Info("csv export written", "path", path)
		}
	}
	if r.cfg.ExportXLSX {
		path := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("admins_%s_%s.xlsx", stamp, sum.RunID))
		if err := export.WriteXLSX(path, accounts); err != nil {
			logger.Error("xlsx export failed", "path", path, "error", err)
		} else {
			sum.XLSXPath = path
			logger.Info("xlsx export written", "path", path)
		}
	}

	return sum, nil
}
