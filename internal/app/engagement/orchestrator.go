package engagement

import (
	"fmt"
	"sync"
	"time"

	"github.com/ahorify/ahorify/internal/domain"
	"github.com/ahorify/ahorify/internal/infra/metrics"
)

// Service is the engagement orchestrator. It sequences the streak
// evaluator, points calculator, milestone checker, and level resolver over
// the activity store, and serializes the read-modify-write cycle per user.
//
// The store dependency is injected; the daemon is the composition root.
type Service struct {
	store domain.ActivityStore

	mu     sync.Mutex // guards userMu
	userMu map[string]*sync.Mutex
}

// NewService creates the orchestrator.
func NewService(store domain.ActivityStore) *Service {
	return &Service{
		store:  store,
		userMu: make(map[string]*sync.Mutex),
	}
}

// lockUser returns the mutex serializing all state mutations for a user.
// Two concurrent calls for the same user must not both read the same
// pre-state, or one award overwrites the other.
func (s *Service) lockUser(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.userMu[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.userMu[userID] = mu
	}
	return mu
}

// RecordEngagement records an engagement event dated today.
func (s *Service) RecordEngagement(userID string, action domain.ActionType, meta *domain.ActionMetadata) (domain.EngagementResult, error) {
	return s.RecordEngagementAt(userID, action, meta, time.Now())
}

// RecordEngagementAt is the deterministic entry point: the caller supplies
// the current date, so tests never depend on the wall clock.
//
// Sequence: validate → daily ledger → streak → points → milestone → level
// → persist. Failures surface as wrapped errors and leave the aggregate
// unchanged; no partially computed state is silently applied.
func (s *Service) RecordEngagementAt(userID string, action domain.ActionType, meta *domain.ActionMetadata, today time.Time) (domain.EngagementResult, error) {
	var result domain.EngagementResult

	if !ValidAction(action) {
		metrics.EngagementsRejected.Inc()
		return result, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}

	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	todayStr := today.Format(domain.DateLayout)

	// The daily ledger feeds engagement-rate reporting. It is separate
	// from the streak mechanism and never a transition input.
	if err := s.store.AppendDailyEngagement(userID, todayStr, action); err != nil {
		return result, fmt.Errorf("append daily engagement: %w", err)
	}

	stats, err := s.store.GetUserStats(userID)
	if err != nil {
		return result, fmt.Errorf("get user stats: %w", err)
	}
	if stats == nil {
		fresh := domain.NewUserStats(userID)
		stats = &fresh
	}

	step := EvaluateStreak(today, *stats)
	ApplyStreak(stats, step, today)

	base := BasePoints(action)
	bonus := Bonuses(today, meta)

	milestone := s.checkMilestone(userID, stats.CurrentStreak)

	earned := base + bonus + step.Points + milestone.Points
	stats.TotalPoints += earned

	level := LevelStatusFor(stats.TotalPoints, earned)

	// The milestone record and the bonus in the point total must commit
	// in the same transaction, or a failure between them would leave the
	// points applied with no record guarding the once-ever policy.
	if milestone.Achieved {
		if err := s.store.PutUserStatsWithMilestone(*stats, milestone.Days, today); err != nil {
			return result, fmt.Errorf("put user stats with milestone: %w", err)
		}
	} else if err := s.store.PutUserStats(*stats); err != nil {
		return result, fmt.Errorf("put user stats: %w", err)
	}

	metrics.EngagementsRecorded.WithLabelValues(string(step.Transition)).Inc()
	metrics.PointsAwarded.Add(float64(earned))
	metrics.CurrentLevel.WithLabelValues(userID).Set(float64(level.Level))
	if milestone.Achieved {
		metrics.MilestonesReached.Inc()
	}

	return domain.EngagementResult{
		Action: action,
		Streak: step,
		Points: domain.PointsBreakdown{
			Base:      base,
			Bonus:     bonus,
			Streak:    step.Points,
			Milestone: milestone.Points,
			Earned:    earned,
			Total:     stats.TotalPoints,
		},
		Milestone: milestone,
		Level:     level,
		Timestamp: today,
	}, nil
}

// checkMilestone decides whether the post-transition streak fires a
// milestone. Milestones are granted once ever per (user, day count): a
// rebuilt streak reaching the same value again does not re-award.
func (s *Service) checkMilestone(userID string, streak int) domain.MilestoneResult {
	m, ok := MilestoneFor(streak)
	if !ok {
		return domain.MilestoneResult{}
	}

	records, err := s.store.ListMilestones(userID)
	if err != nil {
		// Fail closed: better to skip a celebration than double-award.
		return domain.MilestoneResult{}
	}
	for _, r := range records {
		if r.MilestoneDays == m.Days {
			return domain.MilestoneResult{}
		}
	}

	return domain.MilestoneResult{
		Achieved: true,
		Days:     m.Days,
		Points:   m.Points,
		Message:  m.Message,
	}
}

// UserProgress returns the read-only progress projection dated today.
func (s *Service) UserProgress(userID string) domain.ProgressSnapshot {
	return s.UserProgressAt(userID, time.Now())
}

// UserProgressAt builds the progress snapshot for display. Missing or
// partial state degrades to the default zero snapshot instead of failing.
func (s *Service) UserProgressAt(userID string, today time.Time) domain.ProgressSnapshot {
	snapshot := DefaultProgress()

	stats, err := s.store.GetUserStats(userID)
	if err != nil || stats == nil {
		return snapshot
	}

	level := LevelForPoints(stats.TotalPoints)
	snapshot.Level = level
	snapshot.LevelInfo = LevelInfoFor(level)
	snapshot.Points = stats.TotalPoints
	snapshot.NextLevelPoints = NextLevelPoints(level)
	snapshot.ProgressPct = ProgressPct(stats.TotalPoints)
	snapshot.Streak = domain.StreakSummary{
		Current:   stats.CurrentStreak,
		Longest:   stats.LongestStreak,
		TotalDays: stats.TotalStreakDays,
	}
	snapshot.Protections = domain.Protections{
		FreezeAvailable:   !stats.FreezeUsedThisWeek,
		RecoveryAvailable: !stats.RecoveryUsedThisMonth,
	}

	if eng, err := s.store.EngagementStats(userID, today.Format(domain.DateLayout)); err == nil {
		snapshot.Engagement = eng
	}
	return snapshot
}

// DefaultProgress is the well-defined snapshot for users with no state.
func DefaultProgress() domain.ProgressSnapshot {
	return domain.ProgressSnapshot{
		Level:           0,
		LevelInfo:       LevelInfoFor(0),
		Points:          0,
		NextLevelPoints: NextLevelPoints(0),
		ProgressPct:     0,
		Protections: domain.Protections{
			FreezeAvailable:   true,
			RecoveryAvailable: true,
		},
	}
}
