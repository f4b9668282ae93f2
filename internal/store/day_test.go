package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	assert.Equal(t, Day(0), DayOf(time.Date(1970, 1, 1, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, Day(19792), DayOf(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, Day(-1), DayOf(time.Date(1969, 12, 31, 12, 0, 0, 0, time.UTC)))
}

func TestDayOfUsesLocalCalendar(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-03-10 01:00 in Tokyo is still 2024-03-09 in UTC.
	local := time.Date(2024, 3, 10, 1, 0, 0, 0, tokyo)

	assert.Equal(t, "2024-03-10", DayOf(local).String())
	assert.Equal(t, "2024-03-09", DayOf(local.UTC()).String())
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, Day(19792), d)
	assert.Equal(t, time.Sunday, d.Weekday())

	_, err = ParseDay("10/03/2024")
	assert.Error(t, err)
}

func TestAddDaysCrossesMonths(t *testing.T) {
	d, err := ParseDay("2024-03-01")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-29", d.AddDays(-1).String())
	assert.Equal(t, "2024-02-23", d.AddDays(-7).String())
	assert.Equal(t, "2024-03-08", d.AddDays(7).String())
}

func TestDayJSON(t *testing.T) {
	type wrap struct {
		D Day `json:"d"`
	}

	b, err := json.Marshal(wrap{D: 19792})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-03-10"}`, string(b))

	var w wrap
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-03-11"}`), &w))
	assert.Equal(t, Day(19793), w.D)
}
