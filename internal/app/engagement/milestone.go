package engagement

import "github.com/ahorify/ahorify/internal/domain"

// Streak milestones, ascending. A milestone fires on an exact match of the
// post-transition streak value — these are one-shot day-count celebrations,
// not thresholds.
var streakMilestones = []domain.Milestone{
	{Days: 3, Points: 25, Message: "🌟 ¡3 días seguidos!"},
	{Days: 7, Points: 50, Message: "🚀 ¡1 semana completa!"},
	{Days: 14, Points: 100, Message: "💫 ¡2 semanas!"},
	{Days: 30, Points: 250, Message: "🏆 ¡1 MES!"},
	{Days: 90, Points: 500, Message: "👑 ¡3 MESES!"},
}

// Milestones returns the configured milestone table (for display).
func Milestones() []domain.Milestone {
	out := make([]domain.Milestone, len(streakMilestones))
	copy(out, streakMilestones)
	return out
}

// MilestoneFor returns the milestone matching the streak value exactly,
// if one is configured. At most one milestone can match per call.
func MilestoneFor(streak int) (domain.Milestone, bool) {
	for _, m := range streakMilestones {
		if m.Days == streak {
			return m, true
		}
	}
	return domain.Milestone{}, false
}
