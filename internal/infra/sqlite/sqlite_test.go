package sqlite_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahorify/ahorify/internal/domain"
	"github.com/ahorify/ahorify/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserStats_RoundTrip(t *testing.T) {
	db := testDB(t)

	// Unknown user: (nil, nil)
	stats, err := db.GetUserStats("ana")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stats != nil {
		t.Fatalf("expected nil for unknown user, got %+v", stats)
	}

	want := domain.UserStats{
		UserID:           "ana",
		CurrentStreak:    5,
		LongestStreak:    12,
		TotalPoints:      420,
		TotalStreakDays:  30,
		LastActivityDate: "2026-07-15",
	}
	if err := db.PutUserStats(want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := db.GetUserStats("ana")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != want {
		t.Errorf("round trip: got %+v, want %+v", *got, want)
	}

	// Upsert overwrites in place.
	want.CurrentStreak = 6
	want.TotalPoints = 450
	if err := db.PutUserStats(want); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _ = db.GetUserStats("ana")
	if got.CurrentStreak != 6 || got.TotalPoints != 450 {
		t.Errorf("upsert: got %+v", got)
	}
}

func TestUserStats_EmptyLastActivityDate(t *testing.T) {
	db := testDB(t)

	if err := db.PutUserStats(domain.NewUserStats("ana")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := db.GetUserStats("ana")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastActivityDate != "" {
		t.Errorf("expected empty date, got %q", got.LastActivityDate)
	}
}

func TestMilestones_InsertIgnoreDuplicates(t *testing.T) {
	db := testDB(t)
	at := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	fresh, err := db.PutMilestone("ana", 7, at)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !fresh {
		t.Error("first insert should report newly recorded")
	}

	fresh, err = db.PutMilestone("ana", 7, at.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("duplicate put: %v", err)
	}
	if fresh {
		t.Error("duplicate insert should report already recorded")
	}

	records, err := db.ListMilestones("ana")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].MilestoneDays != 7 {
		t.Errorf("records: %+v", records)
	}
}

func TestDailyEngagement_Stats(t *testing.T) {
	db := testDB(t)

	days := []string{"2026-07-13", "2026-07-14", "2026-07-15"}
	for _, d := range days {
		if err := db.AppendDailyEngagement("ana", d, domain.ActionGoalChecked); err != nil {
			t.Fatalf("append %s: %v", d, err)
		}
	}
	// Repeat on the same day must not add an active day.
	if err := db.AppendDailyEngagement("ana", "2026-07-15", domain.ActionDashboardViewed); err != nil {
		t.Fatalf("repeat append: %v", err)
	}
	// An old day outside the 30-day window.
	if err := db.AppendDailyEngagement("ana", "2026-01-01", domain.ActionGoalChecked); err != nil {
		t.Fatalf("old append: %v", err)
	}

	stats, err := db.EngagementStats("ana", "2026-07-15")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalActiveDays != 4 {
		t.Errorf("total active days: got %d, want 4", stats.TotalActiveDays)
	}
	if stats.RecentActiveDays != 3 {
		t.Errorf("recent active days: got %d, want 3", stats.RecentActiveDays)
	}
	if stats.EngagementRate != 10.0 {
		t.Errorf("engagement rate: got %.1f, want 10.0", stats.EngagementRate)
	}
}

func TestTransactions_SaveListDelete(t *testing.T) {
	db := testDB(t)
	now := time.Date(2026, 7, 15, 10, 30, 0, 0, time.UTC)

	tx := domain.Transaction{
		ID:          "tx-1",
		UserID:      "ana",
		Amount:      decimal.RequireFromString("12.50"),
		Type:        domain.TxExpense,
		Category:    "🍔 Comida",
		Emotion:     domain.EmotionNeutral,
		Description: "almuerzo",
		CreatedAt:   now,
	}
	if err := db.SaveTransaction(tx); err != nil {
		t.Fatalf("save: %v", err)
	}

	txs, err := db.ListTransactions("ana", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	got := txs[0]
	if !got.Amount.Equal(tx.Amount) || got.Category != tx.Category || got.Type != tx.Type {
		t.Errorf("round trip: %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("created at: got %v, want %v", got.CreatedAt, now)
	}

	// Other users never see it.
	other, _ := db.ListTransactions("bob", 10)
	if len(other) != 0 {
		t.Errorf("cross-user leak: %+v", other)
	}

	if err := db.DeleteTransaction("ana", "tx-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := db.DeleteTransaction("ana", "tx-1"); !errors.Is(err, domain.ErrTransactionMissing) {
		t.Errorf("second delete: got %v, want ErrTransactionMissing", err)
	}
}

func TestTransactions_TotalsKeepDecimalPrecision(t *testing.T) {
	db := testDB(t)
	now := time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)

	save := func(id, amount string, txType domain.TransactionType, category string) {
		t.Helper()
		err := db.SaveTransaction(domain.Transaction{
			ID: id, UserID: "ana",
			Amount: decimal.RequireFromString(amount),
			Type:   txType, Category: category,
			Emotion: domain.EmotionNeutral, CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	save("t1", "0.10", domain.TxExpense, "🍔 Comida")
	save("t2", "0.20", domain.TxExpense, "🍔 Comida")
	save("t3", "1000.00", domain.TxIncome, "💼 Ingresos")

	totals, err := db.TotalsByType("ana")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if !totals.Expenses.Equal(decimal.RequireFromString("0.30")) {
		t.Errorf("expenses: got %s, want 0.30", totals.Expenses)
	}
	if !totals.Balance.Equal(decimal.RequireFromString("999.70")) {
		t.Errorf("balance: got %s, want 999.70", totals.Balance)
	}
}

func TestTransactions_CategoryTotalsSorted(t *testing.T) {
	db := testDB(t)
	now := time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)

	amounts := map[string]string{
		"🍔 Comida":     "50.00",
		"🚗 Transporte": "120.00",
		"🎮 Ocio":       "15.00",
	}
	i := 0
	for category, amount := range amounts {
		err := db.SaveTransaction(domain.Transaction{
			ID: time.Now().Format("150405") + category, UserID: "ana",
			Amount: decimal.RequireFromString(amount),
			Type:   domain.TxExpense, Category: category,
			Emotion: domain.EmotionNeutral, CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("save %s: %v", category, err)
		}
		i++
	}

	totals, err := db.CategoryTotals("ana")
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if len(totals) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(totals))
	}
	if totals[0].Category != "🚗 Transporte" {
		t.Errorf("largest first: got %q", totals[0].Category)
	}
	if totals[2].Category != "🎮 Ocio" {
		t.Errorf("smallest last: got %q", totals[2].Category)
	}
}

func TestTransactions_DateRange(t *testing.T) {
	db := testDB(t)

	days := []string{"2026-07-10", "2026-07-12", "2026-07-15"}
	for i, d := range days {
		day, _ := time.Parse(domain.DateLayout, d)
		err := db.SaveTransaction(domain.Transaction{
			ID: d, UserID: "ana",
			Amount: decimal.NewFromInt(int64(i + 1)),
			Type:   domain.TxExpense, Category: "🍔 Comida",
			Emotion: domain.EmotionNeutral, CreatedAt: day.Add(9 * time.Hour),
		})
		if err != nil {
			t.Fatalf("save %s: %v", d, err)
		}
	}

	txs, err := db.TransactionsByDateRange("ana", "2026-07-11", "2026-07-14")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != "2026-07-12" {
		t.Errorf("range result: %+v", txs)
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	db := testDB(t)

	// Unknown user: (nil, nil)
	p, err := db.GetPreferences("ana")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil for unknown user, got %+v", p)
	}

	want := domain.UserPreferences{
		UserID:               "ana",
		OnboardingComplete:   true,
		PrimaryGoal:          "ahorrar",
		Currency:             "EUR",
		NotificationsEnabled: true,
	}
	if err := db.PutPreferences(want); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := db.GetPreferences("ana")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != want {
		t.Errorf("round trip: got %+v, want %+v", *got, want)
	}
}
