package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_demo BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT '',
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS student_profiles (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		college TEXT NOT NULL DEFAULT '',
		course TEXT NOT NULL DEFAULT '',
		branch TEXT NOT NULL DEFAULT '',
		graduation_year INTEGER,
		tenth_percent DOUBLE PRECISION,
		twelfth_percent DOUBLE PRECISION,
		cgpa DOUBLE PRECISION,
		phone TEXT NOT NULL DEFAULT '',
		skills TEXT[] NOT NULL DEFAULT '{}',
		linkedin TEXT NOT NULL DEFAULT '',
		github TEXT NOT NULL DEFAULT '',
		portfolio TEXT NOT NULL DEFAULT '',
		resume TEXT,
		saved_opportunities TEXT[] NOT NULL DEFAULT '{}',
		completion INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS company_profiles (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		company_name TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		company_size TEXT NOT NULL DEFAULT '',
		founded INTEGER,
		contact_person TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		address_street TEXT NOT NULL DEFAULT '',
		address_city TEXT NOT NULL DEFAULT '',
		address_state TEXT NOT NULL DEFAULT '',
		address_country TEXT NOT NULL DEFAULT '',
		address_zip TEXT NOT NULL DEFAULT '',
		linkedin TEXT NOT NULL DEFAULT '',
		twitter TEXT NOT NULL DEFAULT '',
		facebook TEXT NOT NULL DEFAULT '',
		logo TEXT,
		posted_opportunities TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS opportunities (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		opportunity_type TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		salary TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT[] NOT NULL DEFAULT '{}',
		responsibilities TEXT[] NOT NULL DEFAULT '{}',
		benefits TEXT[] NOT NULL DEFAULT '{}',
		skills TEXT[] NOT NULL DEFAULT '{}',
		experience_level TEXT NOT NULL DEFAULT 'fresher',
		min_cgpa DOUBLE PRECISION,
		min_tenth_percent DOUBLE PRECISION,
		min_twelfth_percent DOUBLE PRECISION,
		required_graduation_year INTEGER,
		allowed_branches TEXT[] NOT NULL DEFAULT '{}',
		vacancies INTEGER NOT NULL DEFAULT 1,
		deadline TIMESTAMPTZ,
		active BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS opportunity_questions (
		id TEXT PRIMARY KEY,
		opportunity_id TEXT NOT NULL REFERENCES opportunities(id) ON DELETE CASCADE,
		prompt TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		opportunity_id TEXT NOT NULL REFERENCES opportunities(id) ON DELETE CASCADE,
		student_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'applied',
		full_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		linkedin TEXT NOT NULL DEFAULT '',
		college TEXT NOT NULL DEFAULT '',
		degree TEXT NOT NULL DEFAULT '',
		education_status TEXT NOT NULL DEFAULT '',
		graduation_year INTEGER,
		cgpa DOUBLE PRECISION,
		skills TEXT[] NOT NULL DEFAULT '{}',
		projects TEXT NOT NULL DEFAULT '',
		extracurricular TEXT NOT NULL DEFAULT '',
		resume TEXT NOT NULL DEFAULT '',
		cover_letter_file TEXT,
		cover_letter_text TEXT NOT NULL DEFAULT '',
		eligible BOOLEAN NOT NULL DEFAULT FALSE,
		applied_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (opportunity_id, student_id)
	)`,
	`CREATE TABLE IF NOT EXISTS application_answers (
		id TEXT PRIMARY KEY,
		application_id TEXT NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
		question_id TEXT NOT NULL REFERENCES opportunity_questions(id) ON DELETE CASCADE,
		answer TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_student ON applications (student_id, applied_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_opportunity ON applications (opportunity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_opportunities_company ON opportunities (company_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_opportunities_active ON opportunities (active, created_at DESC)`,
}

// Migrate applies the schema idempotently on startup. The UNIQUE
// (opportunity_id, student_id) constraint is load-bearing: it is what makes
// concurrent duplicate submissions impossible regardless of the service-level
// pre-check.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
