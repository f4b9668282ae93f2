// Package history builds the fixed seven-day view shown to the user.
package history

import (
	"context"
	"fmt"

	"github.com/lazypower/leveltrack/internal/store"
)

// Days is the number of calendar days in a view, today included.
const Days = 7

// Reader is the subset of store.Records the view needs.
type Reader interface {
	QueryFrom(ctx context.Context, start store.Day) ([]store.DailyRecord, error)
	Latest(ctx context.Context) (*store.DailyRecord, error)
}

// Entry is one calendar day of the view. Record is nil when nothing was
// recorded that day.
type Entry struct {
	Date   store.Day          `json:"date"`
	Record *store.DailyRecord `json:"record"`
}

// View is the last seven days, newest first, plus the latest record overall.
// Latest may predate the window.
type View struct {
	Today  store.Day          `json:"today"`
	Days   []Entry            `json:"last_7_days"`
	Latest *store.DailyRecord `json:"latest"`
}

// BuildView projects the store onto the seven days ending at now.
func BuildView(ctx context.Context, r Reader, now store.Day) (View, error) {
	recs, err := r.QueryFrom(ctx, now.AddDays(-(Days - 1)))
	if err != nil {
		return View{}, fmt.Errorf("build view: %w", err)
	}

	byDate := make(map[store.Day]store.DailyRecord, len(recs))
	for _, rec := range recs {
		byDate[rec.Date] = rec
	}

	view := View{Today: now, Days: make([]Entry, Days)}
	for i := range view.Days {
		day := now.AddDays(-i)
		view.Days[i].Date = day
		if rec, ok := byDate[day]; ok {
			view.Days[i].Record = &rec
		}
	}

	view.Latest, err = r.Latest(ctx)
	if err != nil {
		return View{}, fmt.Errorf("build view: %w", err)
	}
	return view, nil
}

// RecordedDays returns how many days in the view have a record.
func (v View) RecordedDays() int {
	n := 0
	for _, e := range v.Days {
		if e.Record != nil {
			n++
		}
	}
	return n
}
