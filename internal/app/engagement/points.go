package engagement

import (
	"strings"
	"time"

	"github.com/ahorify/ahorify/internal/domain"
)

// Base points per recognized action type. Well-formed custom_* tags fall
// back to customActionPoints; anything else is rejected before any state
// is touched.
var basePoints = map[domain.ActionType]int{
	domain.ActionTransactionAdded:       10,
	domain.ActionDashboardViewed:        5,
	domain.ActionGoalChecked:            3,
	domain.ActionWeeklyReviewCompleted:  25,
	domain.ActionCategoryAnalysisViewed: 15,
	domain.ActionAppLoaded:              2,
}

const customActionPoints = 5

// Contextual bonuses. Each flag is independent; bonuses accumulate.
const (
	firstTimeBonus      = 10
	consistentWeekBonus = 20
	weekendBonus        = 5
)

// ValidAction reports whether the action type is recognized or is a
// well-formed custom tag.
func ValidAction(action domain.ActionType) bool {
	if _, ok := basePoints[action]; ok {
		return true
	}
	name := string(action)
	return strings.HasPrefix(name, domain.CustomActionPrefix) &&
		len(name) > len(domain.CustomActionPrefix)
}

// BasePoints returns the base award for an action type.
// Callers must validate the action first.
func BasePoints(action domain.ActionType) int {
	if pts, ok := basePoints[action]; ok {
		return pts
	}
	return customActionPoints
}

// Bonuses computes the contextual bonus for an engagement on the given
// date. The weekend bonus keys off the caller-supplied date, not the wall
// clock, so results are deterministic.
func Bonuses(today time.Time, meta *domain.ActionMetadata) int {
	bonus := 0
	if meta != nil {
		if meta.FirstTime {
			bonus += firstTimeBonus
		}
		if meta.ConsistentWeek {
			bonus += consistentWeekBonus
		}
	}
	if wd := today.Weekday(); wd == time.Saturday || wd == time.Sunday {
		bonus += weekendBonus
	}
	return bonus
}
