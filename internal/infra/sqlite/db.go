// Package sqlite provides SQLite-based persistent storage for Ahorify.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/ahorify/ahorify/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/ahorify.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "ahorify.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Engagement aggregate — one row per user, lazily created
		`CREATE TABLE IF NOT EXISTS user_stats (
			user_id                  TEXT PRIMARY KEY,
			current_streak           INTEGER NOT NULL DEFAULT 0 CHECK (current_streak >= 0),
			longest_streak           INTEGER NOT NULL DEFAULT 0 CHECK (longest_streak >= 0),
			total_points             INTEGER NOT NULL DEFAULT 0 CHECK (total_points >= 0),
			total_streak_days        INTEGER NOT NULL DEFAULT 0 CHECK (total_streak_days >= 0),
			last_activity_date       TEXT,
			freeze_used_this_week    BOOLEAN NOT NULL DEFAULT 0,
			recovery_used_this_month BOOLEAN NOT NULL DEFAULT 0,
			updated_at               INTEGER NOT NULL DEFAULT 0
		)`,

		// One-shot streak milestones
		`CREATE TABLE IF NOT EXISTS streak_milestones (
			user_id        TEXT NOT NULL,
			milestone_days INTEGER NOT NULL,
			achieved_at    INTEGER NOT NULL,
			PRIMARY KEY (user_id, milestone_days)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_milestones_user ON streak_milestones(user_id)`,

		// Daily engagement ledger — one row per user per calendar day
		`CREATE TABLE IF NOT EXISTS daily_engagement (
			user_id       TEXT NOT NULL,
			activity_date TEXT NOT NULL,
			actions_count INTEGER NOT NULL DEFAULT 1,
			actions_types TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (user_id, activity_date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_engagement_user_date ON daily_engagement(user_id, activity_date)`,

		// Transactions — amounts stored as decimal text, never floats
		`CREATE TABLE IF NOT EXISTS transactions (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			amount      TEXT NOT NULL,
			type        TEXT NOT NULL CHECK (type IN ('expense', 'income')),
			category    TEXT NOT NULL,
			emotion     TEXT NOT NULL DEFAULT 'neutral',
			description TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_user ON transactions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_created ON transactions(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_type ON transactions(type)`,

		// Category usage counters
		`CREATE TABLE IF NOT EXISTS user_categories (
			user_id       TEXT NOT NULL,
			category_name TEXT NOT NULL,
			usage_count   INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (user_id, category_name)
		)`,

		// Onboarding and display preferences
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id                TEXT PRIMARY KEY,
			onboarding_complete    BOOLEAN NOT NULL DEFAULT 0,
			primary_goal           TEXT NOT NULL DEFAULT '',
			currency               TEXT NOT NULL DEFAULT '€',
			notifications_enabled  BOOLEAN NOT NULL DEFAULT 1,
			weekly_reports_enabled BOOLEAN NOT NULL DEFAULT 1
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Preferences ────────────────────────────────────────────────────────────

// GetPreferences retrieves user preferences, or nil if none stored.
func (d *DB) GetPreferences(userID string) (*domain.UserPreferences, error) {
	row := d.db.QueryRow(
		`SELECT user_id, onboarding_complete, primary_goal, currency, notifications_enabled, weekly_reports_enabled
		 FROM user_preferences WHERE user_id = ?`, userID,
	)
	var p domain.UserPreferences
	err := row.Scan(&p.UserID, &p.OnboardingComplete, &p.PrimaryGoal,
		&p.Currency, &p.NotificationsEnabled, &p.WeeklyReportsEnabled)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PutPreferences inserts or updates user preferences.
func (d *DB) PutPreferences(p domain.UserPreferences) error {
	_, err := d.db.Exec(
		`INSERT INTO user_preferences (user_id, onboarding_complete, primary_goal, currency, notifications_enabled, weekly_reports_enabled)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			onboarding_complete=excluded.onboarding_complete,
			primary_goal=excluded.primary_goal,
			currency=excluded.currency,
			notifications_enabled=excluded.notifications_enabled,
			weekly_reports_enabled=excluded.weekly_reports_enabled`,
		p.UserID, p.OnboardingComplete, p.PrimaryGoal,
		p.Currency, p.NotificationsEnabled, p.WeeklyReportsEnabled,
	)
	return err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
