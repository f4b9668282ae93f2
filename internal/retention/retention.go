// Package retention keeps the record store bounded to the recent past.
//
// Pruning runs after every write, never on a read or a timer:
//   - cutoff is now - 7 days
//   - records dated before the cutoff are deleted
//   - the newest record is never deleted
//   - if the newest record is itself older than the cutoff, nothing is
//     deleted, so a week or more of inactivity does not erase the history
package retention

import (
	"context"
	"fmt"

	"github.com/lazypower/leveltrack/internal/store"
)

// WindowDays is how far back from today records are kept.
const WindowDays = 7

// Store is the subset of store.Records that pruning needs.
type Store interface {
	Latest(ctx context.Context) (*store.DailyRecord, error)
	DeleteWhere(ctx context.Context, olderThan, except store.Day) (int64, error)
}

// SkipReason says why a prune pass deleted nothing on purpose.
type SkipReason string

const (
	SkipNone        SkipReason = ""
	SkipEmpty       SkipReason = "empty"
	SkipStaleLatest SkipReason = "stale-latest"
)

// Result describes one prune pass.
type Result struct {
	Cutoff  store.Day  `json:"cutoff"`
	Latest  *store.Day `json:"latest,omitempty"`
	Deleted int64      `json:"deleted"`
	Skipped SkipReason `json:"skipped,omitempty"`
}

// Cutoff returns the first day that is never eligible for pruning.
func Cutoff(now store.Day) store.Day {
	return now.AddDays(-WindowDays)
}

// Prune deletes records older than Cutoff(now), keeping the newest record.
func Prune(ctx context.Context, s Store, now store.Day) (Result, error) {
	res := Result{Cutoff: Cutoff(now)}

	latest, err := s.Latest(ctx)
	if err != nil {
		return res, fmt.Errorf("prune: %w", err)
	}
	if latest == nil {
		res.Skipped = SkipEmpty
		return res, nil
	}
	latestDate := latest.Date
	res.Latest = &latestDate

	if latest.Date < res.Cutoff {
		res.Skipped = SkipStaleLatest
		return res, nil
	}

	// latest.Date >= cutoff here, so excluding it never changes the result.
	n, err := s.DeleteWhere(ctx, res.Cutoff, latest.Date)
	if err != nil {
		return res, fmt.Errorf("prune: %w", err)
	}
	res.Deleted = n
	return res, nil
}
