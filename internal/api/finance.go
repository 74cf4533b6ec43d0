package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ahorify/ahorify/internal/app/finance"
	"github.com/ahorify/ahorify/internal/domain"
)

// ─── Transactions API (/api/transactions) ────────────────────────────────────

type addTransactionRequest struct {
	Amount      decimal.Decimal           `json:"amount"`
	Type        domain.TransactionType    `json:"type"`
	Category    string                    `json:"category"`
	Emotion     domain.TransactionEmotion `json:"emotion,omitempty"`
	Description string                    `json:"description,omitempty"`
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.finance.Add(userID(r), req.Amount, req.Type, req.Category, req.Description, req.Emotion)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAmountNotPositive),
			errors.Is(err, domain.ErrInvalidTxType),
			errors.Is(err, domain.ErrInvalidEmotion),
			errors.Is(err, domain.ErrEmptyCategory):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	// ?q= or ?category= switches to search mode.
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	var (
		txs []domain.Transaction
		err error
	)
	if q != "" || category != "" {
		txs, err = s.finance.Search(userID(r), q, category)
	} else {
		txs, err = s.finance.Recent(userID(r), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if txs == nil {
		txs = []domain.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
	})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.finance.Delete(userID(r), id); err != nil {
		if errors.Is(err, domain.ErrTransactionMissing) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handleSummary aggregates totals, the week-over-week comparison, the
// current month, and the category breakdown into one response.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	now := time.Now()

	totals, err := s.finance.Totals(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	weekly, err := s.finance.WeeklySummaryAt(uid, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	monthly, err := s.finance.MonthlyTotalsAt(uid, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	breakdown, err := s.finance.CategoryBreakdown(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if breakdown == nil {
		breakdown = []finance.CategoryShare{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totals":    totals,
		"weekly":    weekly,
		"monthly":   monthly,
		"breakdown": breakdown,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.finance.SuggestedCategories(userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// ─── Analytics API (/api/analytics) ──────────────────────────────────────────

func (s *Server) handleHealthScore(w http.ResponseWriter, r *http.Request) {
	score, err := s.analytics.HealthScore(userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, score)
}
