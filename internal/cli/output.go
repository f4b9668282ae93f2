package cli

import (
	"fmt"
	"io"

	"github.com/lazypower/leveltrack/internal/history"
	"github.com/lazypower/leveltrack/internal/retention"
	"github.com/lazypower/leveltrack/internal/store"
)

func goalSuffix(r store.DailyRecord) string {
	if r.GoalLevel == nil {
		return ""
	}
	return fmt.Sprintf(" of %d", *r.GoalLevel)
}

// formatLatest renders the headline: "Level 3 (Day 2) of 5".
func formatLatest(r store.DailyRecord) string {
	return fmt.Sprintf("Level %d (Day %d)%s", r.Level, r.DayAtLevel, goalSuffix(r))
}

// formatRow renders one history row: "Lvl: 3, Day: 2 of 5" or "No Data".
func formatRow(r *store.DailyRecord) string {
	if r == nil {
		return "No Data"
	}
	return fmt.Sprintf("Lvl: %d, Day: %d%s", r.Level, r.DayAtLevel, goalSuffix(*r))
}

func renderHistory(w io.Writer, v history.View) {
	fmt.Fprintln(w, "Last Recorded Level")
	if v.Latest != nil {
		fmt.Fprintf(w, "  %s\n", formatLatest(*v.Latest))
	} else {
		fmt.Fprintln(w, "  No data yet")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Last 7 Days")
	for _, e := range v.Days {
		label := e.Date.String()
		if e.Date == v.Today {
			label = "Today"
		}
		fmt.Fprintf(w, "  %-10s  %.3s  %s\n", label, e.Date.Weekday(), formatRow(e.Record))
	}
}

func renderRecorded(w io.Writer, rec store.DailyRecord, pruned retention.Result) {
	fmt.Fprintf(w, "Recorded %s for %s\n", formatLatest(rec), rec.Date)
	if pruned.Deleted > 0 {
		fmt.Fprintf(w, "Pruned %d record(s) older than %s\n", pruned.Deleted, pruned.Cutoff)
	}
}
