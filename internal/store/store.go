package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fixitfast/adminseed/internal/admin"
)

// ErrDuplicate reports that an account with the same email is already stored.
// It is an expected outcome on re-runs, not a failure.
var ErrDuplicate = errors.New("account already exists")

// Store persists admin documents keyed uniquely by email.
type Store interface {
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, doc admin.Document) error
	Close(ctx context.Context) error
}

// Result aggregates insertion outcomes for one batch.
type Result struct {
	Inserted   int
	Duplicates int
	Errors     int
}

// InsertAll writes each account's persistable projection to the store and
// classifies every outcome. A duplicate email is a no-op; any other failure
// is counted and the batch continues. Each document is one atomic write, so
// re-running the same batch converges to one stored record per email.
func InsertAll(ctx context.Context, s Store, accounts []admin.Account, logger *slog.Logger) Result {
	var res Result
	for _, acc := range accounts {
		err := s.Insert(ctx, acc.Document())
		switch {
		case err == nil:
			res.Inserted++
			logger.Info("admin inserted", "city", acc.City, "email", acc.Email)
		case errors.Is(err, ErrDuplicate):
			res.Duplicates++
			logger.Info("admin already exists", "city", acc.City, "email", acc.Email)
		default:
			res.Errors++
			logger.Error("insert admin", "city", acc.City, "email", acc.Email, "error", err)
		}
	}
	return res
}
