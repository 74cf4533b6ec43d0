package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Transaction Types ──────────────────────────────────────────────────────

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TxExpense TransactionType = "expense"
	TxIncome  TransactionType = "income"
)

// TransactionEmotion tags the emotional context of a spend.
type TransactionEmotion string

const (
	EmotionNeutral    TransactionEmotion = "neutral"
	EmotionHappy      TransactionEmotion = "happy"
	EmotionImpulsive  TransactionEmotion = "impulsive"
	EmotionStress     TransactionEmotion = "stress"
	EmotionInvestment TransactionEmotion = "investment"
)

// ValidEmotion reports whether e is one of the recognized emotion tags.
func ValidEmotion(e TransactionEmotion) bool {
	switch e {
	case EmotionNeutral, EmotionHappy, EmotionImpulsive, EmotionStress, EmotionInvestment:
		return true
	}
	return false
}

// Transaction is one income or expense record. Amounts are always
// positive; the type carries the sign.
type Transaction struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Amount      decimal.Decimal    `json:"amount"`
	Type        TransactionType    `json:"type"`
	Category    string             `json:"category"`
	Emotion     TransactionEmotion `json:"emotion"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
}

// IsExpense reports whether the transaction is an outflow.
func (t Transaction) IsExpense() bool { return t.Type == TxExpense }

// CategoryTotal is one row of the per-category expense breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Totals aggregates all-time income and expenses for a user.
type Totals struct {
	Expenses decimal.Decimal `json:"total_expenses"`
	Income   decimal.Decimal `json:"total_income"`
	Balance  decimal.Decimal `json:"balance"`
}

// UserPreferences holds onboarding and display settings.
// Presentation itself lives outside this core; the record is persisted
// here so clients can read and update it over the API.
type UserPreferences struct {
	UserID               string `json:"user_id"`
	OnboardingComplete   bool   `json:"onboarding_complete"`
	PrimaryGoal          string `json:"primary_goal"`
	Currency             string `json:"currency"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	WeeklyReportsEnabled bool   `json:"weekly_reports_enabled"`
}

// DefaultCategories seeds a new user's category list.
var DefaultCategories = []string{
	"🍔 Comida", "🚗 Transporte", "🎮 Ocio", "🏠 Vivienda",
	"👗 Ropa", "💊 Salud", "📚 Educación", "✈️ Viajes",
	"🎁 Regalos", "📱 Tecnología", "💡 Servicios", "💰 Ahorros",
	"💼 Ingresos", "❓ Otros",
}
