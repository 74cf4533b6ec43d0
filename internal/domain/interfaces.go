package domain

import "time"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// ActivityStore abstracts durable engagement state. Implemented by
// infra/sqlite.DB. GetUserStats returns (nil, nil) for unknown users;
// the orchestrator creates state lazily.
type ActivityStore interface {
	GetUserStats(userID string) (*UserStats, error)
	PutUserStats(stats UserStats) error

	// PutUserStatsWithMilestone applies the aggregate upsert and the
	// milestone record atomically, so the milestone bonus in the point
	// total can never persist without the record that marks it awarded.
	PutUserStatsWithMilestone(stats UserStats, milestoneDays int, at time.Time) error

	// AppendDailyEngagement upserts the per-day ledger row:
	// one row per user per calendar day, incrementing an action counter.
	AppendDailyEngagement(userID, activityDate string, action ActionType) error

	// PutMilestone records a milestone achievement. Returns false when
	// the (user, milestoneDays) pair was already recorded.
	PutMilestone(userID string, milestoneDays int, at time.Time) (bool, error)
	ListMilestones(userID string) ([]MilestoneRecord, error)

	// EngagementStats summarizes the daily ledger relative to today.
	EngagementStats(userID, today string) (EngagementStats, error)
}

// PreferencesStore abstracts onboarding and display settings.
// GetPreferences returns (nil, nil) for users with nothing stored.
type PreferencesStore interface {
	GetPreferences(userID string) (*UserPreferences, error)
	PutPreferences(p UserPreferences) error
}

// TransactionStore abstracts transaction persistence.
type TransactionStore interface {
	SaveTransaction(tx Transaction) error
	DeleteTransaction(userID, id string) error
	ListTransactions(userID string, limit int) ([]Transaction, error)
	TransactionsByDateRange(userID, startDate, endDate string) ([]Transaction, error)
	TotalsByType(userID string) (Totals, error)
	CategoryTotals(userID string) ([]CategoryTotal, error)
	UserCategories(userID string) ([]string, error)
}

// EngagementRecorder is the slice of the orchestrator the transaction
// service needs: every saved transaction reports a qualifying action.
type EngagementRecorder interface {
	RecordEngagementAt(userID string, action ActionType, meta *ActionMetadata, today time.Time) (EngagementResult, error)
}
