package store

import (
	"context"
	"database/sql"
)

// DailyRecord is the single entry for one calendar day.
type DailyRecord struct {
	Date       Day  `json:"date"`
	Level      int  `json:"level"`
	DayAtLevel int  `json:"day_at_level"`
	GoalLevel  *int `json:"goal_level"`
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Records holds the daily_records operations. Obtain one from DB.Records or
// inside DB.InTx.
type Records struct {
	q querier
}

const recordColumns = `date, level, day_at_level, goal_level`

// Upsert inserts r, or replaces every field of the record already stored
// for r.Date.
func (r *Records) Upsert(ctx context.Context, rec DailyRecord) error {
	var goal sql.NullInt64
	if rec.GoalLevel != nil {
		goal = sql.NullInt64{Int64: int64(*rec.GoalLevel), Valid: true}
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT OR REPLACE INTO daily_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?)
	`, int64(rec.Date), rec.Level, rec.DayAtLevel, goal)
	if err != nil {
		return storageErr("upsert record", err)
	}
	return nil
}

// QueryFrom returns every record dated on or after start, newest first.
func (r *Records) QueryFrom(ctx context.Context, start Day) ([]DailyRecord, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM daily_records WHERE date >= ? ORDER BY date DESC
	`, int64(start))
	if err != nil {
		return nil, storageErr("query records", err)
	}
	defer rows.Close()

	records := []DailyRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, storageErr("scan record", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("query records", err)
	}
	return records, nil
}

// Latest returns the record with the greatest date, or nil if the store is empty.
func (r *Records) Latest(ctx context.Context) (*DailyRecord, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM daily_records ORDER BY date DESC LIMIT 1
	`)
	return scanOne(row, "latest record")
}

// Get returns the record for day, or nil if none was written.
func (r *Records) Get(ctx context.Context, day Day) (*DailyRecord, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM daily_records WHERE date = ?
	`, int64(day))
	return scanOne(row, "get record")
}

// DeleteWhere removes every record dated before olderThan, except the one on
// except, in a single statement. It returns the number of rows removed.
func (r *Records) DeleteWhere(ctx context.Context, olderThan, except Day) (int64, error) {
	result, err := r.q.ExecContext(ctx, `
		DELETE FROM daily_records WHERE date < ? AND date != ?
	`, int64(olderThan), int64(except))
	if err != nil {
		return 0, storageErr("delete records", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// Count returns the number of stored records.
func (r *Records) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_records`).Scan(&n); err != nil {
		return 0, storageErr("count records", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (DailyRecord, error) {
	var (
		rec  DailyRecord
		date int64
		goal sql.NullInt64
	)
	if err := s.Scan(&date, &rec.Level, &rec.DayAtLevel, &goal); err != nil {
		return DailyRecord{}, err
	}
	rec.Date = Day(date)
	if goal.Valid {
		g := int(goal.Int64)
		rec.GoalLevel = &g
	}
	return rec, nil
}

func scanOne(row *sql.Row, op string) (*DailyRecord, error) {
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(op, err)
	}
	return &rec, nil
}
