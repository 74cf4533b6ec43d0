package sqlite

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahorify/ahorify/internal/domain"
)

// Amounts travel as decimal text through the database so no precision is
// lost; aggregation happens in Go with shopspring/decimal.

// SaveTransaction inserts a transaction and bumps its category counter.
func (d *DB) SaveTransaction(tx domain.Transaction) error {
	dbTx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.Exec(
		`INSERT INTO transactions (id, user_id, amount, type, category, emotion, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.Amount.String(), string(tx.Type), tx.Category,
		string(tx.Emotion), tx.Description, tx.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	_, err = dbTx.Exec(
		`INSERT INTO user_categories (user_id, category_name, usage_count)
		 VALUES (?, ?, 1)
		 ON CONFLICT(user_id, category_name) DO UPDATE SET usage_count = usage_count + 1`,
		tx.UserID, tx.Category,
	)
	if err != nil {
		return fmt.Errorf("bump category: %w", err)
	}

	return dbTx.Commit()
}

// DeleteTransaction removes a transaction owned by the user.
func (d *DB) DeleteTransaction(userID, id string) error {
	result, err := d.db.Exec(
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrTransactionMissing
	}
	return nil
}

// ListTransactions returns the user's most recent transactions.
func (d *DB) ListTransactions(userID string, limit int) ([]domain.Transaction, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, amount, type, category, emotion, description, created_at
		 FROM transactions WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

// TransactionsByDateRange returns transactions whose calendar date falls
// within [startDate, endDate] (DateLayout strings, inclusive).
func (d *DB) TransactionsByDateRange(userID, startDate, endDate string) ([]domain.Transaction, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, amount, type, category, emotion, description, created_at
		 FROM transactions
		 WHERE user_id = ? AND date(created_at) BETWEEN ? AND ?
		 ORDER BY created_at DESC`,
		userID, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

// TotalsByType sums all-time expenses and income for a user.
func (d *DB) TotalsByType(userID string) (domain.Totals, error) {
	totals := domain.Totals{
		Expenses: decimal.Zero,
		Income:   decimal.Zero,
	}

	rows, err := d.db.Query(
		`SELECT amount, type FROM transactions WHERE user_id = ?`, userID,
	)
	if err != nil {
		return totals, err
	}
	defer rows.Close()

	for rows.Next() {
		var amountStr, txType string
		if err := rows.Scan(&amountStr, &txType); err != nil {
			return totals, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return totals, fmt.Errorf("parse amount %q: %w", amountStr, err)
		}
		switch domain.TransactionType(txType) {
		case domain.TxExpense:
			totals.Expenses = totals.Expenses.Add(amount)
		case domain.TxIncome:
			totals.Income = totals.Income.Add(amount)
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expenses)
	return totals, rows.Err()
}

// CategoryTotals returns expense totals per category, largest first.
func (d *DB) CategoryTotals(userID string) ([]domain.CategoryTotal, error) {
	rows, err := d.db.Query(
		`SELECT category, amount FROM transactions
		 WHERE user_id = ? AND type = 'expense'`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byCategory := map[string]decimal.Decimal{}
	var order []string
	for rows.Next() {
		var category, amountStr string
		if err := rows.Scan(&category, &amountStr); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amountStr, err)
		}
		if _, seen := byCategory[category]; !seen {
			order = append(order, category)
		}
		byCategory[category] = byCategory[category].Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totals := make([]domain.CategoryTotal, 0, len(order))
	for _, c := range order {
		totals = append(totals, domain.CategoryTotal{Category: c, Total: byCategory[c]})
	}
	// Largest spend first
	for i := 1; i < len(totals); i++ {
		for j := i; j > 0 && totals[j].Total.GreaterThan(totals[j-1].Total); j-- {
			totals[j], totals[j-1] = totals[j-1], totals[j]
		}
	}
	return totals, nil
}

// UserCategories returns the user's category names ordered by usage.
func (d *DB) UserCategories(userID string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT category_name FROM user_categories
		 WHERE user_id = ? ORDER BY usage_count DESC, category_name`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		categories = append(categories, name)
	}
	return categories, rows.Err()
}

func scanTransaction(s scanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var amountStr, txType, emotion, createdAt string

	err := s.Scan(&tx.ID, &tx.UserID, &amountStr, &txType, &tx.Category,
		&emotion, &tx.Description, &createdAt)
	if err != nil {
		return nil, err
	}

	tx.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amountStr, err)
	}
	tx.Type = domain.TransactionType(txType)
	tx.Emotion = domain.TransactionEmotion(emotion)
	tx.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &tx, nil
}
