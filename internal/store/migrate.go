package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on every Open. Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		interests TEXT NOT NULL DEFAULT '[]',
		goals TEXT NOT NULL DEFAULT '[]',
		learning_style TEXT NOT NULL DEFAULT '',
		skill_level INTEGER NOT NULL DEFAULT 1,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		difficulty INTEGER NOT NULL DEFAULT 0,
		credits INTEGER NOT NULL DEFAULT 0,
		recommended_for TEXT NOT NULL DEFAULT '[]',
		materials TEXT NOT NULL DEFAULT '[]',
		videos TEXT NOT NULL DEFAULT '[]',
		questions TEXT NOT NULL DEFAULT '[]',
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		course_id TEXT NOT NULL,
		correct INTEGER NOT NULL,
		total INTEGER NOT NULL,
		percentage INTEGER NOT NULL,
		stars INTEGER NOT NULL,
		credits INTEGER NOT NULL,
		completed_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_results_course ON quiz_results(course_id)`,
	`CREATE TABLE IF NOT EXISTS engagement_days (
		day TEXT PRIMARY KEY,
		recorded_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS video_search_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		query TEXT NOT NULL,
		max_results INTEGER NOT NULL,
		result_count INTEGER NOT NULL,
		latency_ms INTEGER NOT NULL,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_video_search_events_ts ON video_search_events(timestamp)`,
	`CREATE TABLE IF NOT EXISTS assistant_turn_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		course_id TEXT NOT NULL DEFAULT '',
		rule TEXT NOT NULL,
		tone TEXT NOT NULL,
		resource_count INTEGER NOT NULL,
		latency_ms INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assistant_turn_events_session ON assistant_turn_events(session_id)`,
}

// resettableTables are cleared by Store.Reset, children first.
var resettableTables = []string{
	"assistant_turn_events",
	"video_search_events",
	"quiz_results",
	"engagement_days",
	"courses",
	"catalog_meta",
	"profiles",
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
