// Package finance implements transaction bookkeeping and analytics over
// the transaction store. Saving a transaction reports the qualifying
// action to the engagement orchestrator synchronously.
package finance

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorify/ahorify/internal/domain"
	"github.com/ahorify/ahorify/internal/infra/metrics"
)

// Service manages transactions for a user store.
type Service struct {
	store    domain.TransactionStore
	recorder domain.EngagementRecorder // nil disables gamification
}

// NewService creates a transaction service.
func NewService(store domain.TransactionStore, recorder domain.EngagementRecorder) *Service {
	return &Service{store: store, recorder: recorder}
}

// AddResult reports the outcome of adding a transaction, including the
// engagement result when gamification fired.
type AddResult struct {
	Transaction domain.Transaction       `json:"transaction"`
	Engagement  *domain.EngagementResult `json:"engagement,omitempty"`
}

// Add validates and persists a transaction dated now.
func (s *Service) Add(userID string, amount decimal.Decimal, txType domain.TransactionType, category, description string, emotion domain.TransactionEmotion) (AddResult, error) {
	return s.AddAt(userID, amount, txType, category, description, emotion, time.Now())
}

// AddAt persists a transaction with a caller-supplied timestamp and then
// records the transaction_added engagement for the same calendar day.
// The engagement call is synchronous and serialized inside the
// orchestrator; an engagement failure does not roll back the transaction.
func (s *Service) AddAt(userID string, amount decimal.Decimal, txType domain.TransactionType, category, description string, emotion domain.TransactionEmotion, at time.Time) (AddResult, error) {
	var result AddResult

	if !amount.IsPositive() {
		return result, domain.ErrAmountNotPositive
	}
	if txType != domain.TxExpense && txType != domain.TxIncome {
		return result, fmt.Errorf("%w: %q", domain.ErrInvalidTxType, txType)
	}
	if emotion == "" {
		emotion = domain.EmotionNeutral
	}
	if !domain.ValidEmotion(emotion) {
		return result, fmt.Errorf("%w: %q", domain.ErrInvalidEmotion, emotion)
	}
	if strings.TrimSpace(category) == "" {
		return result, domain.ErrEmptyCategory
	}

	tx := domain.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Category:    strings.TrimSpace(category),
		Emotion:     emotion,
		Description: description,
		CreatedAt:   at,
	}
	if err := s.store.SaveTransaction(tx); err != nil {
		return result, fmt.Errorf("save transaction: %w", err)
	}
	metrics.TransactionsSaved.WithLabelValues(string(txType)).Inc()
	result.Transaction = tx

	if s.recorder != nil {
		eng, err := s.recorder.RecordEngagementAt(userID, domain.ActionTransactionAdded, nil, at)
		if err != nil {
			// The transaction is saved; the user just misses a celebration.
			log.Printf("[finance] engagement for transaction %s failed: %v", tx.ID, err)
		} else {
			result.Engagement = &eng
		}
	}
	return result, nil
}

// Recent returns the user's most recent transactions.
func (s *Service) Recent(userID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.ListTransactions(userID, limit)
}

// Delete removes a transaction owned by the user.
func (s *Service) Delete(userID, id string) error {
	return s.store.DeleteTransaction(userID, id)
}

// Totals returns all-time income, expenses, and balance.
func (s *Service) Totals(userID string) (domain.Totals, error) {
	return s.store.TotalsByType(userID)
}

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// CategoryBreakdown returns per-category expense shares, largest first.
func (s *Service) CategoryBreakdown(userID string) ([]CategoryShare, error) {
	totals, err := s.store.CategoryTotals(userID)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}

	breakdown := make([]CategoryShare, 0, len(totals))
	for _, t := range totals {
		share := CategoryShare{Category: t.Category, Amount: t.Total}
		if sum.IsPositive() {
			pct, _ := t.Total.Div(sum).Mul(decimal.NewFromInt(100)).Round(1).Float64()
			share.Percentage = pct
		}
		breakdown = append(breakdown, share)
	}
	return breakdown, nil
}

// SuggestedCategories merges the user's most-used categories with the
// defaults, deduplicated, capped at fifteen.
func (s *Service) SuggestedCategories(userID string) ([]string, error) {
	used, err := s.store.UserCategories(userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []string
	for _, c := range append(used, domain.DefaultCategories...) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	if len(out) > 15 {
		out = out[:15]
	}
	return out, nil
}

// WeeklySummary compares this week's expenses against last week's.
type WeeklySummary struct {
	ThisWeekExpenses decimal.Decimal `json:"this_week_expenses"`
	LastWeekExpenses decimal.Decimal `json:"last_week_expenses"`
	ExpenseChangePct float64         `json:"expense_change"`
	Trend            string          `json:"trend"`
}

// WeeklySummaryAt builds the week-over-week comparison relative to today.
// The week starts on Monday.
func (s *Service) WeeklySummaryAt(userID string, today time.Time) (WeeklySummary, error) {
	var summary WeeklySummary

	weekday := int(today.Weekday()+6) % 7 // Monday = 0
	startOfWeek := today.AddDate(0, 0, -weekday)
	startOfLastWeek := startOfWeek.AddDate(0, 0, -7)
	endOfLastWeek := startOfWeek.AddDate(0, 0, -1)

	thisWeek, err := s.store.TransactionsByDateRange(userID,
		startOfWeek.Format(domain.DateLayout), today.Format(domain.DateLayout))
	if err != nil {
		return summary, err
	}
	lastWeek, err := s.store.TransactionsByDateRange(userID,
		startOfLastWeek.Format(domain.DateLayout), endOfLastWeek.Format(domain.DateLayout))
	if err != nil {
		return summary, err
	}

	summary.ThisWeekExpenses = sumExpenses(thisWeek)
	summary.LastWeekExpenses = sumExpenses(lastWeek)

	if summary.LastWeekExpenses.IsPositive() {
		change, _ := summary.ThisWeekExpenses.Sub(summary.LastWeekExpenses).
			Div(summary.LastWeekExpenses).Mul(decimal.NewFromInt(100)).Float64()
		summary.ExpenseChangePct = change
	}

	switch {
	case summary.ExpenseChangePct > 5:
		summary.Trend = "📈 Subiendo"
	case summary.ExpenseChangePct < -5:
		summary.Trend = "📉 Bajando"
	default:
		summary.Trend = "➡️ Estable"
	}
	return summary, nil
}

// MonthlyTotals aggregates the current calendar month.
type MonthlyTotals struct {
	Expenses     decimal.Decimal `json:"monthly_expenses"`
	Income       decimal.Decimal `json:"monthly_income"`
	DailyAverage decimal.Decimal `json:"daily_average"`
}

// MonthlyTotalsAt aggregates from the first of today's month through today.
func (s *Service) MonthlyTotalsAt(userID string, today time.Time) (MonthlyTotals, error) {
	var totals MonthlyTotals

	startOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	txs, err := s.store.TransactionsByDateRange(userID,
		startOfMonth.Format(domain.DateLayout), today.Format(domain.DateLayout))
	if err != nil {
		return totals, err
	}

	for _, tx := range txs {
		if tx.IsExpense() {
			totals.Expenses = totals.Expenses.Add(tx.Amount)
		} else {
			totals.Income = totals.Income.Add(tx.Amount)
		}
	}
	if days := today.Day(); days > 0 {
		totals.DailyAverage = totals.Expenses.Div(decimal.NewFromInt(int64(days))).Round(2)
	}
	return totals, nil
}

// TopCategories returns the highest-spend categories, capped at limit.
func (s *Service) TopCategories(userID string, limit int) ([]domain.CategoryTotal, error) {
	if limit <= 0 {
		limit = 5
	}
	totals, err := s.store.CategoryTotals(userID)
	if err != nil {
		return nil, err
	}
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals, nil
}

// Search filters transactions by a case-insensitive description match and
// an optional exact category.
func (s *Service) Search(userID, query, category string) ([]domain.Transaction, error) {
	all, err := s.store.ListTransactions(userID, 1000)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []domain.Transaction
	for _, tx := range all {
		if q != "" && !strings.Contains(strings.ToLower(tx.Description), q) {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}
		results = append(results, tx)
	}
	return results, nil
}

func sumExpenses(txs []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.IsExpense() {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}
