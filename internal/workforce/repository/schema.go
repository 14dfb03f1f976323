package repository

import (
	"context"

	"github.com/shiftboard/shiftboard-backend/pkg/database"
)

const shiftRecordsDDL = `
	CREATE TABLE IF NOT EXISTS shift_records (
		id               BIGSERIAL PRIMARY KEY,
		user_id          TEXT NOT NULL,
		company          TEXT NOT NULL,
		branch_city      TEXT NOT NULL DEFAULT '',
		branch_address   TEXT NOT NULL DEFAULT '',
		date             TEXT NOT NULL,
		production       DOUBLE PRECISION NOT NULL DEFAULT 0,
		tariff_type      TEXT NOT NULL DEFAULT '',
		work_cost        DOUBLE PRECISION NOT NULL DEFAULT 0,
		work_cost_client DOUBLE PRECISION NOT NULL DEFAULT 0,
		synced_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

const userRecordsDDL = `
	CREATE TABLE IF NOT EXISTS user_records (
		user_id        TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		raw_created_at TEXT NOT NULL DEFAULT '',
		synced_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT user_records_user_id_key UNIQUE (user_id)
	)`

// Schema lists the idempotent DDL for the workforce tables
var Schema = []string{
	shiftRecordsDDL,
	`CREATE INDEX IF NOT EXISTS idx_shift_records_date_company ON shift_records (date, company)`,
	`CREATE INDEX IF NOT EXISTS idx_shift_records_company ON shift_records (company)`,
	userRecordsDDL,
	`CREATE INDEX IF NOT EXISTS idx_user_records_created_at ON user_records (created_at)`,
}

// EnsureSchema creates the workforce tables when they are missing
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return db.EnsureSchema(ctx, Schema...)
}
