package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ahorify/ahorify/internal/domain"
)

// ─── User Stats ─────────────────────────────────────────────────────────────

// GetUserStats retrieves the engagement aggregate for a user.
// Returns (nil, nil) when the user has no state yet.
func (d *DB) GetUserStats(userID string) (*domain.UserStats, error) {
	row := d.db.QueryRow(
		`SELECT user_id, current_streak, longest_streak, total_points, total_streak_days,
		        last_activity_date, freeze_used_this_week, recovery_used_this_month
		 FROM user_stats WHERE user_id = ?`, userID,
	)
	return scanUserStats(row)
}

// PutUserStats upserts the full engagement aggregate in one statement.
// This is the single logical update for an engagement call.
func (d *DB) PutUserStats(stats domain.UserStats) error {
	return upsertUserStats(d.db, stats)
}

// PutUserStatsWithMilestone upserts the aggregate and records the
// milestone inside one transaction: the milestone bonus in the point
// total and the record that marks it awarded land or fail together.
func (d *DB) PutUserStatsWithMilestone(stats domain.UserStats, milestoneDays int, at time.Time) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := upsertUserStats(tx, stats); err != nil {
		return fmt.Errorf("upsert user stats: %w", err)
	}
	_, err = tx.Exec(
		`INSERT OR IGNORE INTO streak_milestones (user_id, milestone_days, achieved_at)
		 VALUES (?, ?, ?)`,
		stats.UserID, milestoneDays, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert milestone: %w", err)
	}
	return tx.Commit()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertUserStats(e execer, stats domain.UserStats) error {
	_, err := e.Exec(
		`INSERT INTO user_stats
			(user_id, current_streak, longest_streak, total_points, total_streak_days,
			 last_activity_date, freeze_used_this_week, recovery_used_this_month, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			current_streak=excluded.current_streak,
			longest_streak=excluded.longest_streak,
			total_points=excluded.total_points,
			total_streak_days=excluded.total_streak_days,
			last_activity_date=excluded.last_activity_date,
			freeze_used_this_week=excluded.freeze_used_this_week,
			recovery_used_this_month=excluded.recovery_used_this_month,
			updated_at=excluded.updated_at`,
		stats.UserID, stats.CurrentStreak, stats.LongestStreak,
		stats.TotalPoints, stats.TotalStreakDays,
		nullableString(stats.LastActivityDate),
		stats.FreezeUsedThisWeek, stats.RecoveryUsedThisMonth,
		time.Now().Unix(),
	)
	return err
}

// ─── Daily Engagement Ledger ────────────────────────────────────────────────

// AppendDailyEngagement upserts the per-day ledger row, incrementing the
// action counter and appending the action tag on repeat calls.
func (d *DB) AppendDailyEngagement(userID, activityDate string, action domain.ActionType) error {
	_, err := d.db.Exec(
		`INSERT INTO daily_engagement (user_id, activity_date, actions_count, actions_types)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT(user_id, activity_date) DO UPDATE SET
			actions_count = actions_count + 1,
			actions_types = actions_types || ',' || excluded.actions_types`,
		userID, activityDate, string(action),
	)
	return err
}

// EngagementStats summarizes the daily ledger: total distinct active days
// and active days within the 30 days ending at today (DateLayout string).
func (d *DB) EngagementStats(userID, today string) (domain.EngagementStats, error) {
	var stats domain.EngagementStats

	err := d.db.QueryRow(
		`SELECT COUNT(DISTINCT activity_date) FROM daily_engagement WHERE user_id = ?`,
		userID,
	).Scan(&stats.TotalActiveDays)
	if err != nil {
		return stats, err
	}

	day, err := time.Parse(domain.DateLayout, today)
	if err != nil {
		day = time.Now()
	}
	cutoff := day.AddDate(0, 0, -30).Format(domain.DateLayout)

	err = d.db.QueryRow(
		`SELECT COUNT(DISTINCT activity_date) FROM daily_engagement
		 WHERE user_id = ? AND activity_date >= ?`,
		userID, cutoff,
	).Scan(&stats.RecentActiveDays)
	if err != nil {
		return stats, err
	}

	rate := float64(stats.RecentActiveDays) / 30.0 * 100.0
	if rate > 100 {
		rate = 100
	}
	stats.EngagementRate = rate
	return stats, nil
}

// ─── Milestones ─────────────────────────────────────────────────────────────

// PutMilestone records a milestone achievement.
// Returns false if the (user, milestoneDays) pair was already recorded.
func (d *DB) PutMilestone(userID string, milestoneDays int, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO streak_milestones (user_id, milestone_days, achieved_at)
		 VALUES (?, ?, ?)`,
		userID, milestoneDays, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly recorded
}

// ListMilestones returns a user's achieved milestones in ascending day order.
func (d *DB) ListMilestones(userID string) ([]domain.MilestoneRecord, error) {
	rows, err := d.db.Query(
		`SELECT user_id, milestone_days, achieved_at
		 FROM streak_milestones WHERE user_id = ? ORDER BY milestone_days`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MilestoneRecord
	for rows.Next() {
		var r domain.MilestoneRecord
		var achievedAt int64
		if err := rows.Scan(&r.UserID, &r.MilestoneDays, &achievedAt); err != nil {
			return nil, err
		}
		r.AchievedAt = time.Unix(achievedAt, 0)
		records = append(records, r)
	}
	return records, rows.Err()
}

// ─── Scanners ───────────────────────────────────────────────────────────────

func scanUserStats(s scanner) (*domain.UserStats, error) {
	var stats domain.UserStats
	var lastDate sql.NullString

	err := s.Scan(&stats.UserID, &stats.CurrentStreak, &stats.LongestStreak,
		&stats.TotalPoints, &stats.TotalStreakDays, &lastDate,
		&stats.FreezeUsedThisWeek, &stats.RecoveryUsedThisMonth)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	if lastDate.Valid {
		stats.LastActivityDate = lastDate.String
	}
	return &stats, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
