// Package engagement implements the Ahorify gamification engine:
// streaks, points, milestones, and levels over the activity store.
// Design rule: real value, not dark patterns.
package engagement

import (
	"fmt"
	"time"

	"github.com/ahorify/ahorify/internal/domain"
)

// Streak awards. A day counts once; same-day repeats never inflate the
// streak. The per-day bonus stops growing after a week.
const (
	streakStartAward    = 10
	streakIncrementBase = 10
	streakPerDayBonus   = 2
	streakBonusCapDays  = 7
)

// EvaluateStreak is a pure function of the caller-supplied current date and
// the stored state. It decides the transition and the points the streak
// step itself awards; it does not touch storage.
//
// Exactly one day since the last activity extends the streak; more than one
// breaks it. An unparseable stored date is treated as no prior activity
// (fail open toward Start, never toward crash).
func EvaluateStreak(today time.Time, stats domain.UserStats) domain.StreakStep {
	if stats.LastActivityDate == "" {
		return domain.StreakStep{
			Transition: domain.StreakStart,
			Updated:    true,
			Streak:     1,
			Points:     streakStartAward,
			Message:    "🎉 ¡Comienza tu racha financiera!",
		}
	}

	lastActive, err := time.Parse(domain.DateLayout, stats.LastActivityDate)
	if err != nil {
		return domain.StreakStep{
			Transition: domain.StreakStart,
			Updated:    true,
			Streak:     1,
			Points:     streakStartAward,
			Message:    "🎉 ¡Comienza tu racha financiera!",
		}
	}

	gap := daysBetween(lastActive, today)
	switch {
	case gap <= 0:
		// Same calendar day — already counted
		return domain.StreakStep{
			Transition: domain.StreakMaintain,
			Updated:    false,
			Streak:     stats.CurrentStreak,
			Message:    "Racha mantenida - ya activo hoy",
		}

	case gap == 1:
		newStreak := stats.CurrentStreak + 1
		bonus := streakIncrementBase + min(newStreak, streakBonusCapDays)*streakPerDayBonus
		return domain.StreakStep{
			Transition: domain.StreakIncrement,
			Updated:    true,
			Streak:     newStreak,
			Points:     bonus,
			Message:    fmt.Sprintf("🔥 ¡Racha de %d días! +%d puntos", newStreak, bonus),
		}

	default:
		return domain.StreakStep{
			Transition: domain.StreakBreak,
			Updated:    true,
			Streak:     0,
			Message:    fmt.Sprintf("💔 Racha rota después de %d días de inactividad", gap),
		}
	}
}

// ApplyStreak folds a streak step into the stored aggregate.
// Longest streak is monotonic; total streak days only grows.
func ApplyStreak(stats *domain.UserStats, step domain.StreakStep, today time.Time) {
	switch step.Transition {
	case domain.StreakMaintain:
		return
	case domain.StreakStart, domain.StreakIncrement:
		stats.CurrentStreak = step.Streak
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
		stats.TotalStreakDays++
	case domain.StreakBreak:
		stats.CurrentStreak = 0
	}
	stats.LastActivityDate = today.Format(domain.DateLayout)
}

// daysBetween returns whole calendar days from a to b, ignoring the time
// component and timezone of both.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad) / (24 * time.Hour))
}
