package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Shared scan plumbing for the Postgres repositories.

type scanner interface {
	Scan(dest ...any) error
}

func nullableText(v *string) any {
	if v == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{Valid: true, String: *v}
}

func floatPtr(v pgtype.Float8) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func timePtr(v pgtype.Timestamptz) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func textPtr(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func int64Ptr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
