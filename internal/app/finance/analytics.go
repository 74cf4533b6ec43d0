package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahorify/ahorify/internal/domain"
)

// Component weights of the financial health score. They sum to 1.
const (
	weightBalance         = 0.30
	weightConsistency     = 0.25
	weightTrends          = 0.20
	weightDiversification = 0.15
	weightSavings         = 0.10
)

// HealthComponent is one weighted slice of the health score.
type HealthComponent struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// HealthScore is the 0-100 financial health assessment.
type HealthScore struct {
	TotalScore      int                        `json:"total_score"`
	Components      map[string]HealthComponent `json:"components"`
	Grade           string                     `json:"grade"`
	Recommendations []string                   `json:"recommendations"`
	Timestamp       time.Time                  `json:"timestamp"`
}

// Analytics computes financial insights on top of the transaction service.
type Analytics struct {
	txs *Service
}

// NewAnalytics creates an analytics service.
func NewAnalytics(txs *Service) *Analytics {
	return &Analytics{txs: txs}
}

// HealthScore computes the health score as of now.
func (a *Analytics) HealthScore(userID string) (HealthScore, error) {
	return a.HealthScoreAt(userID, time.Now())
}

// HealthScoreAt weighs balance, recording consistency, expense trend,
// category diversification, and savings ratio into a single 0-100 score.
// When the inputs cannot be read it degrades to the no-data score rather
// than failing.
func (a *Analytics) HealthScoreAt(userID string, today time.Time) (HealthScore, error) {
	totals, err := a.txs.Totals(userID)
	if err != nil {
		return defaultHealthScore(today), nil
	}
	recent, err := a.txs.Recent(userID, 30)
	if err != nil {
		return defaultHealthScore(today), nil
	}
	weekly, err := a.txs.WeeklySummaryAt(userID, today)
	if err != nil {
		return defaultHealthScore(today), nil
	}
	breakdown, err := a.txs.CategoryBreakdown(userID)
	if err != nil {
		return defaultHealthScore(today), nil
	}

	components := map[string]HealthComponent{
		"balance":         {Score: balanceScore(totals.Balance), Weight: weightBalance},
		"consistency":     {Score: consistencyScore(recent, today), Weight: weightConsistency},
		"trends":          {Score: trendScore(weekly.ExpenseChangePct), Weight: weightTrends},
		"diversification": {Score: diversificationScore(len(breakdown)), Weight: weightDiversification},
		"savings":         {Score: savingsScore(totals), Weight: weightSavings},
	}

	var total float64
	for _, c := range components {
		total += c.Score * c.Weight
	}

	return HealthScore{
		TotalScore:      int(total + 0.5),
		Components:      components,
		Grade:           healthGrade(total),
		Recommendations: recommendations(components),
		Timestamp:       today,
	}, nil
}

func balanceScore(balance decimal.Decimal) float64 {
	b, _ := balance.Float64()
	switch {
	case b > 0:
		return minF(100, 60+(b/1000*40))
	case b == 0:
		return 50
	default:
		return maxF(0, 50+(b/500*50))
	}
}

// consistencyScore awards 15 points per distinct active day in the last
// week, capped at 100.
func consistencyScore(txs []domain.Transaction, today time.Time) float64 {
	if len(txs) == 0 {
		return 0
	}
	cutoff := today.AddDate(0, 0, -7)
	days := map[string]bool{}
	for _, tx := range txs {
		if !tx.CreatedAt.Before(cutoff) {
			days[tx.CreatedAt.Format(domain.DateLayout)] = true
		}
	}
	return minF(100, float64(len(days))*15)
}

func trendScore(expenseChangePct float64) float64 {
	switch {
	case expenseChangePct < -10:
		return 90
	case expenseChangePct < 0:
		return 70
	case expenseChangePct == 0:
		return 50
	case expenseChangePct < 10:
		return 30
	default:
		return 10
	}
}

func diversificationScore(categories int) float64 {
	switch {
	case categories == 0:
		return 0
	case categories <= 2:
		return 20
	case categories <= 4:
		return 50
	case categories <= 6:
		return 75
	default:
		return 95
	}
}

func savingsScore(totals domain.Totals) float64 {
	if !totals.Income.IsPositive() {
		return 0
	}
	ratio, _ := totals.Balance.Div(totals.Income).Mul(decimal.NewFromInt(100)).Float64()
	switch {
	case ratio >= 20:
		return 100
	case ratio >= 10:
		return 75
	case ratio >= 5:
		return 50
	case ratio > 0:
		return 25
	default:
		return 0
	}
}

func healthGrade(score float64) string {
	switch {
	case score >= 90:
		return "Excelente 🏆"
	case score >= 75:
		return "Muy Bueno 💪"
	case score >= 60:
		return "Bueno 👍"
	case score >= 40:
		return "Regular ⚠️"
	default:
		return "Necesita Mejora 🚨"
	}
}

func recommendations(components map[string]HealthComponent) []string {
	var recs []string
	if components["balance"].Score < 40 {
		recs = append(recs, "💡 Enfócate en reducir gastos para mejorar tu balance")
	}
	if components["consistency"].Score < 50 {
		recs = append(recs, "📅 Registra tus gastos diariamente para mejor consistencia")
	}
	if components["trends"].Score < 30 {
		recs = append(recs, "📉 Tus gastos están subiendo, revisa tus categorías principales")
	}
	if components["diversification"].Score < 40 {
		recs = append(recs, "🔄 Diversifica tus gastos en más categorías")
	}
	if components["savings"].Score < 30 {
		recs = append(recs, "💰 Establece una meta de ahorro mensual")
	}
	if len(recs) == 0 {
		recs = append(recs, "🎉 ¡Sigue así! Tu salud financiera es sólida")
	}
	return recs
}

func defaultHealthScore(today time.Time) HealthScore {
	return HealthScore{
		TotalScore:      0,
		Components:      map[string]HealthComponent{},
		Grade:           "Sin datos suficientes",
		Recommendations: []string{"📝 Comienza registrando tus primeras transacciones"},
		Timestamp:       today,
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
