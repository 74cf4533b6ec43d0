package engagement

import "github.com/ahorify/ahorify/internal/domain"

// The ten level tiers, ascending by cumulative points. The lowest
// threshold is 0, so every point total maps to a defined level.
var levels = []domain.LevelInfo{
	{Points: 0, Name: "Recién Llegado 💰", Badge: "💰"},
	{Points: 100, Name: "Operador Junior 📈", Badge: "📈"},
	{Points: 300, Name: "Analista Senior 💼", Badge: "💼"},
	{Points: 600, Name: "Fund Manager 🏦", Badge: "🏦"},
	{Points: 1000, Name: "Tiburón de Wall Street 🦈", Badge: "🦈"},
	{Points: 1500, Name: "Magnate Financiero 💎", Badge: "💎"},
	{Points: 2100, Name: "Visionario Global 🌐", Badge: "🌐"},
	{Points: 2800, Name: "Leyenda Viva 🏆", Badge: "🏆"},
	{Points: 3600, Name: "Oráculo Financiero 🔮", Badge: "🔮"},
	{Points: 4500, Name: "Emperador del Capital 👑", Badge: "👑"},
}

// Levels returns the full tier table (for display).
func Levels() []domain.LevelInfo {
	out := make([]domain.LevelInfo, len(levels))
	copy(out, levels)
	return out
}

// LevelForPoints returns the highest tier index whose threshold the point
// total meets. Negative totals clamp to the first tier.
func LevelForPoints(points int) int {
	level := 0
	for i, info := range levels {
		if points >= info.Points {
			level = i
		} else {
			break
		}
	}
	return level
}

// LevelInfoFor returns the display metadata for a tier index, falling back
// to the first tier for out-of-range values.
func LevelInfoFor(level int) domain.LevelInfo {
	if level >= 0 && level < len(levels) {
		return levels[level]
	}
	return levels[0]
}

// NextLevelPoints returns the threshold of the tier above the given one.
// At the maximum tier it returns that tier's own threshold.
func NextLevelPoints(level int) int {
	if level < len(levels)-1 {
		return levels[level+1].Points
	}
	return levels[len(levels)-1].Points
}

// ProgressPct returns progress within the current tier as a percentage,
// clamped to [0, 100]. The maximum tier always reports 100.
func ProgressPct(points int) float64 {
	level := LevelForPoints(points)
	if level >= len(levels)-1 {
		return 100.0
	}
	span := levels[level+1].Points - levels[level].Points
	if span <= 0 {
		return 100.0
	}
	pct := float64(points-levels[level].Points) / float64(span) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// LevelStatusFor derives the level for a point total and flags a level-up
// by comparing against the level at (total - lastAward). The signal is
// derived on every call, never stored.
func LevelStatusFor(totalPoints, lastAward int) domain.LevelStatus {
	level := LevelForPoints(totalPoints)
	previous := totalPoints - lastAward
	if previous < 0 {
		previous = 0
	}
	previousLevel := LevelForPoints(previous)

	return domain.LevelStatus{
		Level:           level,
		LeveledUp:       level > previousLevel,
		PreviousLevel:   previousLevel,
		Info:            LevelInfoFor(level),
		NextLevelPoints: NextLevelPoints(level),
		ProgressPct:     ProgressPct(totalPoints),
	}
}
