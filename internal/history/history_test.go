package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazypower/leveltrack/internal/store"
)

const today store.Day = 20000

func openDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBuildViewEmptyStore(t *testing.T) {
	db := openDB(t)

	v, err := BuildView(context.Background(), db.Records(), today)
	require.NoError(t, err)

	require.Len(t, v.Days, Days)
	for i, e := range v.Days {
		assert.Equal(t, today.AddDays(-i), e.Date)
		assert.Nil(t, e.Record)
	}
	assert.Nil(t, v.Latest)
	assert.Zero(t, v.RecordedDays())
}

func TestBuildViewFillsGaps(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	goal := 9
	for _, rec := range []store.DailyRecord{
		{Date: today, Level: 5, DayAtLevel: 3, GoalLevel: &goal},
		{Date: today.AddDays(-2), Level: 5, DayAtLevel: 1},
		{Date: today.AddDays(-6), Level: 4, DayAtLevel: 7},
		{Date: today.AddDays(-7), Level: 4, DayAtLevel: 6},
	} {
		require.NoError(t, db.Records().Upsert(ctx, rec))
	}

	v, err := BuildView(ctx, db.Records(), today)
	require.NoError(t, err)
	require.Len(t, v.Days, Days)

	present := map[int]int{0: 5, 2: 5, 6: 4}
	for i, e := range v.Days {
		if lvl, ok := present[i]; ok {
			require.NotNil(t, e.Record, "day -%d", i)
			assert.Equal(t, e.Date, e.Record.Date)
			assert.Equal(t, lvl, e.Record.Level)
		} else {
			assert.Nil(t, e.Record, "day -%d", i)
		}
	}
	assert.Equal(t, 3, v.RecordedDays())

	require.NotNil(t, v.Latest)
	assert.Equal(t, today, v.Latest.Date)
	assert.Equal(t, 9, *v.Latest.GoalLevel)
}

func TestBuildViewLatestOutsideWindow(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	require.NoError(t, db.Records().Upsert(ctx, store.DailyRecord{Date: today.AddDays(-30), Level: 2, DayAtLevel: 4}))

	v, err := BuildView(ctx, db.Records(), today)
	require.NoError(t, err)

	assert.Len(t, v.Days, Days)
	assert.Zero(t, v.RecordedDays())
	require.NotNil(t, v.Latest)
	assert.Equal(t, today.AddDays(-30), v.Latest.Date)
}

func TestBuildViewIgnoresFutureRecords(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	require.NoError(t, db.Records().Upsert(ctx, store.DailyRecord{Date: today.AddDays(1), Level: 2, DayAtLevel: 4}))

	v, err := BuildView(ctx, db.Records(), today)
	require.NoError(t, err)
	assert.Len(t, v.Days, Days)
	assert.Zero(t, v.RecordedDays())
}

type failingReader struct{ err error }

func (f failingReader) QueryFrom(context.Context, store.Day) ([]store.DailyRecord, error) {
	return nil, f.err
}

func (f failingReader) Latest(context.Context) (*store.DailyRecord, error) {
	return nil, f.err
}

func TestBuildViewSurfacesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := BuildView(context.Background(), failingReader{err: boom}, today)
	assert.ErrorIs(t, err, boom)
}
