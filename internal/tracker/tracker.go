// Package tracker is the boundary the CLI and HTTP server call: record
// today's level, read the seven-day history.
package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"

	"github.com/lazypower/leveltrack/internal/history"
	"github.com/lazypower/leveltrack/internal/metrics"
	"github.com/lazypower/leveltrack/internal/retention"
	"github.com/lazypower/leveltrack/internal/store"
)

// Service records daily entries and builds history views.
type Service struct {
	db       *store.DB
	clock    clockwork.Clock
	log      *slog.Logger
	metrics  *metrics.Recorder
	validate *validator.Validate
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock "today" is read from.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a Service over db. Defaults: real clock, discarded logs, no metrics.
func New(db *store.DB, opts ...Option) *Service {
	s := &Service{
		db:       db,
		clock:    clockwork.NewRealClock(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate: newValidator(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Recorded is the outcome of RecordToday.
type Recorded struct {
	Record store.DailyRecord `json:"record"`
	Prune  retention.Result  `json:"prune"`
}

// Today returns the current calendar date in the clock's location.
func (s *Service) Today() store.Day {
	return store.DayOf(s.clock.Now())
}

// RecordToday stores in under today's date, replacing any earlier entry for
// today, then prunes. Both steps commit together.
func (s *Service) RecordToday(ctx context.Context, in Input) (Recorded, error) {
	if err := validateInput(s.validate, in); err != nil {
		s.metrics.InvalidInput()
		return Recorded{}, err
	}

	today := s.Today()
	rec := store.DailyRecord{
		Date:       today,
		Level:      *in.Level,
		DayAtLevel: *in.DayAtLevel,
	}
	if in.GoalLevel != nil {
		goal := *in.GoalLevel
		rec.GoalLevel = &goal
	}

	var pruned retention.Result
	err := s.db.InTx(ctx, func(r *store.Records) error {
		if err := r.Upsert(ctx, rec); err != nil {
			return err
		}
		var err error
		pruned, err = retention.Prune(ctx, r, today)
		return err
	})
	if err != nil {
		s.metrics.StorageError("record")
		s.log.Error("record today failed", "date", today, "error", err)
		return Recorded{}, fmt.Errorf("record today: %w", err)
	}

	s.metrics.RecordWritten(rec.Level)
	s.metrics.Pruned(pruned.Deleted)
	s.metrics.PruneSkipped(string(pruned.Skipped))

	s.log.Info("recorded level", "date", today, "level", rec.Level, "day_at_level", rec.DayAtLevel)
	switch {
	case pruned.Skipped == retention.SkipStaleLatest:
		s.log.Info("prune skipped: latest record predates cutoff", "cutoff", pruned.Cutoff)
	case pruned.Deleted > 0:
		s.log.Debug("pruned old records", "cutoff", pruned.Cutoff, "deleted", pruned.Deleted)
	}

	return Recorded{Record: rec, Prune: pruned}, nil
}

// HistoryView returns the seven days ending today and the latest record.
// It never prunes.
func (s *Service) HistoryView(ctx context.Context) (history.View, error) {
	view, err := history.BuildView(ctx, s.db.Records(), s.Today())
	if err != nil {
		s.metrics.StorageError("history")
		return history.View{}, fmt.Errorf("history view: %w", err)
	}
	return view, nil
}

// Ping reports whether the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w: %w", store.ErrStorageUnavailable, err)
	}
	return nil
}

// DBPath returns the path of the backing database.
func (s *Service) DBPath() string {
	return s.db.Path
}
