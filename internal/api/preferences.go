package api

import (
	"encoding/json"
	"net/http"

	"github.com/ahorify/ahorify/internal/domain"
)

// ─── Preferences API (/api/preferences) ──────────────────────────────────────

// handleGetPreferences returns the stored preferences, or the defaults for
// users who never saved any.
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	p, err := s.prefs.GetPreferences(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		p = &domain.UserPreferences{
			UserID:               uid,
			Currency:             "EUR",
			NotificationsEnabled: true,
			WeeklyReportsEnabled: true,
		}
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var p domain.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.UserID = userID(r)

	if err := s.prefs.PutPreferences(p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}
