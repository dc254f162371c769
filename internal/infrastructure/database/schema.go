package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// tableDDL lists every table in dependency order. The %[1]s verb expands to
// the driver-specific auto-increment primary key column.
var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id %[1]s,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL,
		level TEXT NOT NULL DEFAULT 'a2',
		xp BIGINT NOT NULL DEFAULT 0,
		streak INTEGER NOT NULL DEFAULT 0,
		last_active TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lessons (
		id %[1]s,
		level TEXT NOT NULL,
		module TEXT NOT NULL,
		ord INTEGER NOT NULL,
		title TEXT NOT NULL,
		content_json TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS badges (
		id %[1]s,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		icon TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		id %[1]s,
		user_id BIGINT NOT NULL REFERENCES users (id),
		lesson_id BIGINT NOT NULL REFERENCES lessons (id),
		score DOUBLE PRECISION NOT NULL,
		completed_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_results (
		id %[1]s,
		user_id BIGINT NOT NULL REFERENCES users (id),
		game_type TEXT NOT NULL,
		score DOUBLE PRECISION NOT NULL,
		xp_earned INTEGER NOT NULL,
		played_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_weaknesses (
		id %[1]s,
		user_id BIGINT NOT NULL REFERENCES users (id),
		skill_area TEXT NOT NULL,
		error_count INTEGER NOT NULL DEFAULT 0,
		last_tested TIMESTAMP NOT NULL,
		UNIQUE (user_id, skill_area)
	)`,
	`CREATE TABLE IF NOT EXISTS user_badges (
		id %[1]s,
		user_id BIGINT NOT NULL REFERENCES users (id),
		badge_id BIGINT NOT NULL REFERENCES badges (id),
		earned_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, badge_id)
	)`,
}

var indexDDL = []string{
	`CREATE INDEX IF NOT EXISTS idx_lessons_level_module ON lessons (level, module, ord)`,
	`CREATE INDEX IF NOT EXISTS idx_user_progress_user ON user_progress (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_game_results_user ON game_results (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_weaknesses_user ON user_weaknesses (user_id)`,
}

// InitSchema creates all tables and indexes if they do not exist yet.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	pk := "BIGSERIAL PRIMARY KEY"
	if db.DriverName() == "sqlite3" {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	for _, ddl := range tableDDL {
		stmt := fmt.Sprintf(ddl, pk)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// SeedBadges inserts the badge catalog, skipping names already present.
func SeedBadges(ctx context.Context, db *sqlx.DB, badges []BadgeSeed) error {
	query := db.Rebind(`INSERT INTO badges (name, description, icon) VALUES (?, ?, ?)`)
	for _, badge := range badges {
		var exists int
		err := db.GetContext(ctx, &exists,
			db.Rebind(`SELECT COUNT(*) FROM badges WHERE name = ?`), badge.Name)
		if err != nil {
			return fmt.Errorf("check badge %q: %w", badge.Name, err)
		}
		if exists > 0 {
			continue
		}
		if _, err := db.ExecContext(ctx, query, badge.Name, badge.Description, badge.Icon); err != nil {
			return fmt.Errorf("seed badge %q: %w", badge.Name, err)
		}
	}
	return nil
}

// BadgeSeed is one row of the badge catalog.
type BadgeSeed struct {
	Name        string
	Description string
	Icon        string
}

// DefaultBadges is the badge catalog the progress service awards from. Names
// are load-bearing: the award rules match on them.
var DefaultBadges = []BadgeSeed{
	{Name: "First Steps", Description: "Complete your first lesson", Icon: "footprints"},
	{Name: "Scholar", Description: "Complete 10 lessons", Icon: "book"},
	{Name: "Game On", Description: "Play your first game", Icon: "gamepad"},
	{Name: "Streak Master", Description: "Reach a 7-day streak", Icon: "fire"},
	{Name: "XP Hunter", Description: "Earn 500 XP total", Icon: "trophy"},
	{Name: "Perfectionist", Description: "Get a perfect score on any activity", Icon: "star"},
}

// TruncateAll empties every table, child tables first. Intended for tests and
// for restoring from a backup into a clean database.
func TruncateAll(ctx context.Context, db *sqlx.DB) error {
	tables := []string{"user_badges", "user_weaknesses", "game_results", "user_progress", "badges", "lessons", "users"}
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	if db.DriverName() == "sqlite3" {
		stmt := fmt.Sprintf("DELETE FROM sqlite_sequence WHERE name IN ('%s')", strings.Join(tables, "', '"))
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// sqlite_sequence only exists once an AUTOINCREMENT insert happened.
			return nil
		}
	}
	return nil
}
