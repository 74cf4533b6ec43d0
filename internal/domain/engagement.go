// Package domain holds the core types of the Ahorify engagement engine.
// The engagement engine converts raw user activity into streaks, points,
// milestones, and levels. Design rule: real value, not dark patterns.
package domain

import "time"

// DateLayout is the calendar-date format used for all streak logic.
// Streaks are day-granular; no time component is ever stored.
const DateLayout = "2006-01-02"

// ─── Action Types ───────────────────────────────────────────────────────────

// ActionType tags a single engagement event.
type ActionType string

const (
	ActionTransactionAdded       ActionType = "transaction_added"
	ActionDashboardViewed        ActionType = "dashboard_viewed"
	ActionGoalChecked            ActionType = "goal_checked"
	ActionWeeklyReviewCompleted  ActionType = "weekly_review_completed"
	ActionCategoryAnalysisViewed ActionType = "category_analysis_viewed"
	ActionAppLoaded              ActionType = "app_loaded"

	// CustomActionPrefix opens a namespace for caller-defined actions.
	// Well-formed custom tags earn the default minimum base points.
	CustomActionPrefix = "custom_"
)

// ActionMetadata carries optional context flags for an engagement event.
// Bonuses are independent and cumulative.
type ActionMetadata struct {
	FirstTime      bool `json:"first_time"`
	ConsistentWeek bool `json:"consistent_week"`
}

// ─── Engagement State ───────────────────────────────────────────────────────

// UserStats is the per-user engagement aggregate. One row per user,
// created lazily on the first engagement, never deleted.
//
// Invariants: CurrentStreak <= LongestStreak; TotalPoints and
// TotalStreakDays never decrease; LastActivityDate is empty iff the user
// has never triggered a streak-affecting action.
type UserStats struct {
	UserID                string `json:"user_id"`
	CurrentStreak         int    `json:"current_streak"`
	LongestStreak         int    `json:"longest_streak"`
	TotalPoints           int    `json:"total_points"`
	TotalStreakDays       int    `json:"total_streak_days"`
	LastActivityDate      string `json:"last_activity_date"` // DateLayout or "" before first activity
	FreezeUsedThisWeek    bool   `json:"freeze_used_this_week"`
	RecoveryUsedThisMonth bool   `json:"recovery_used_this_month"`
}

// NewUserStats returns the zero-state aggregate for a user.
func NewUserStats(userID string) UserStats {
	return UserStats{UserID: userID}
}

// Milestone is a streak day-count configured to fire a one-shot bonus.
type Milestone struct {
	Days    int    `json:"days"`
	Points  int    `json:"points"`
	Message string `json:"message"`
}

// MilestoneRecord marks a milestone as achieved for a user.
// Unique per (user_id, milestone_days); never deleted.
type MilestoneRecord struct {
	UserID        string    `json:"user_id"`
	MilestoneDays int       `json:"milestone_days"`
	AchievedAt    time.Time `json:"achieved_at"`
}

// ─── Streak Transitions ─────────────────────────────────────────────────────

// StreakTransition names the outcome of evaluating one engagement day.
type StreakTransition string

const (
	StreakStart     StreakTransition = "start"     // first activity ever
	StreakMaintain  StreakTransition = "maintain"  // already active today
	StreakIncrement StreakTransition = "increment" // consecutive calendar day
	StreakBreak     StreakTransition = "break"     // gap of more than one day
)

// StreakStep is the result of the streak evaluator: the transition taken,
// the points it awards on its own, and a display message.
type StreakStep struct {
	Transition StreakTransition `json:"transition"`
	Updated    bool             `json:"updated"` // false only for Maintain
	Streak     int              `json:"streak"`  // post-transition streak
	Points     int              `json:"points"`  // streak-step award (0 on Maintain/Break)
	Message    string           `json:"message"`
}

// ─── Levels ─────────────────────────────────────────────────────────────────

// LevelInfo is the display metadata of one level tier.
type LevelInfo struct {
	Points int    `json:"points"` // cumulative threshold to enter the tier
	Name   string `json:"name"`
	Badge  string `json:"badge"`
}

// LevelStatus reports the level derived from a point total, with
// progress toward the next tier. LeveledUp is derived, never stored.
type LevelStatus struct {
	Level           int       `json:"level"`
	LeveledUp       bool      `json:"level_up"`
	PreviousLevel   int       `json:"previous_level"`
	Info            LevelInfo `json:"level_info"`
	NextLevelPoints int       `json:"next_level_points"`
	ProgressPct     float64   `json:"progress_percentage"` // clamped to [0,100]
}

// ─── Consolidated Results ───────────────────────────────────────────────────

// PointsBreakdown splits the points earned by one engagement call.
// Streak-step points and action points are both applied; they are not
// mutually exclusive.
type PointsBreakdown struct {
	Base      int `json:"base"`      // action-type base points
	Bonus     int `json:"bonuses"`   // metadata + weekend bonuses
	Streak    int `json:"streak"`    // streak-step award
	Milestone int `json:"milestone"` // one-shot milestone award
	Earned    int `json:"earned"`    // sum of the above
	Total     int `json:"total"`     // new cumulative total
}

// MilestoneResult reports whether an engagement call crossed a milestone.
type MilestoneResult struct {
	Achieved bool   `json:"achieved"`
	Days     int    `json:"milestone_days,omitempty"`
	Points   int    `json:"points_earned,omitempty"`
	Message  string `json:"message,omitempty"`
}

// EngagementResult is the consolidated outcome of RecordEngagement.
type EngagementResult struct {
	Action    ActionType      `json:"action"`
	Streak    StreakStep      `json:"streak"`
	Points    PointsBreakdown `json:"points"`
	Milestone MilestoneResult `json:"milestone"`
	Level     LevelStatus     `json:"level"`
	Timestamp time.Time       `json:"timestamp"`
}

// EngagementStats summarizes the daily-engagement ledger for display.
type EngagementStats struct {
	TotalActiveDays  int     `json:"total_active_days"`
	RecentActiveDays int     `json:"recent_active_days"` // last 30 days
	EngagementRate   float64 `json:"engagement_rate"`    // recent/30*100, capped at 100
}

// Protections reports which streak-protection features are still available.
// The reset schedule is external to the engagement core.
type Protections struct {
	FreezeAvailable   bool `json:"freeze_available"`
	RecoveryAvailable bool `json:"recovery_available"`
}

// StreakSummary is the streak slice of a progress snapshot.
type StreakSummary struct {
	Current   int `json:"current"`
	Longest   int `json:"longest"`
	TotalDays int `json:"total_days"`
}

// ProgressSnapshot is the read-only projection returned by UserProgress.
// A missing or partial state yields the well-defined default snapshot,
// never an error.
type ProgressSnapshot struct {
	Level           int             `json:"level"`
	LevelInfo       LevelInfo       `json:"level_info"`
	Points          int             `json:"points"`
	NextLevelPoints int             `json:"next_level_points"`
	ProgressPct     float64         `json:"progress_percentage"`
	Streak          StreakSummary   `json:"streak"`
	Engagement      EngagementStats `json:"engagement"`
	Protections     Protections     `json:"protections"`
}
