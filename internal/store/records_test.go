package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestUpsertInsertsAndReadsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := db.Records()

	rec := DailyRecord{Date: 20000, Level: 3, DayAtLevel: 5, GoalLevel: intPtr(7)}
	require.NoError(t, r.Upsert(ctx, rec))

	got, err := r.QueryFrom(ctx, rec.Date)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}

func TestUpsertSameDateReplaces(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := db.Records()

	require.NoError(t, r.Upsert(ctx, DailyRecord{Date: 20000, Level: 3, DayAtLevel: 5, GoalLevel: intPtr(7)}))
	require.NoError(t, r.Upsert(ctx, DailyRecord{Date: 20000, Level: 4, DayAtLevel: 1}))

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := r.Get(ctx, 20000)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Level)
	assert.Equal(t, 1, got.DayAtLevel)
	assert.Nil(t, got.GoalLevel, "replacement clears fields the second write left unset")
}

func TestQueryFromOrderAndBound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := db.Records()

	for _, d := range []Day{10, 14, 12, 9} {
		require.NoError(t, r.Upsert(ctx, DailyRecord{Date: d, Level: int(d), DayAtLevel: 1}))
	}

	got, err := r.QueryFrom(ctx, 10)
	require.NoError(t, err)

	var dates []Day
	for _, rec := range got {
		dates = append(dates, rec.Date)
	}
	assert.Equal(t, []Day{14, 12, 10}, dates)
}

func TestQueryFromNoMatchIsEmpty(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := db.Records()

	require.NoError(t, r.Upsert(ctx, DailyRecord{Date: 5, Level: 1, DayAtLevel: 1}))

	got, err := r.QueryFrom(ctx, 6)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLatest(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := db.Records()

	latest, err := r.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "empty store has no latest record")

	for _, d := range []Day{30, 50, 40} {
		require.NoError(t, r.Upsert(ctx, DailyRecord{Date: d, Level: int(d), DayAtLevel: 1}))
	}

	latest, err = r.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, Day(50), latest.Date)
	assert.Equal(t, 50, latest.Level)
}

func TestGetMissing(t *testing.T) {
	db := openTestDB(t)

	got, err := db.Records().Get(context.Background(), 123)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteWhere(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := db.Records()

	for _, d := range []Day{1, 2, 3, 4, 5, 6} {
		require.NoError(t, r.Upsert(ctx, DailyRecord{Date: d, Level: 1, DayAtLevel: 1}))
	}

	n, err := r.DeleteWhere(ctx, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	got, err := r.QueryFrom(ctx, 0)
	require.NoError(t, err)
	var dates []Day
	for _, rec := range got {
		dates = append(dates, rec.Date)
	}
	assert.Equal(t, []Day{6, 5, 2}, dates, "day 2 is below the bound but excepted")
}

func TestDeleteWhereNeverRemovesExcept(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := db.Records()

	require.NoError(t, r.Upsert(ctx, DailyRecord{Date: 1, Level: 9, DayAtLevel: 9}))

	n, err := r.DeleteWhere(ctx, 100, 1)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := r.Get(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestRecordsAreCopies(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := db.Records()

	require.NoError(t, r.Upsert(ctx, DailyRecord{Date: 1, Level: 2, DayAtLevel: 3, GoalLevel: intPtr(4)}))

	first, err := r.Latest(ctx)
	require.NoError(t, err)
	first.Level = 99
	*first.GoalLevel = 99

	second, err := r.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Level)
	assert.Equal(t, 4, *second.GoalLevel)
}
