package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ahorify/ahorify/internal/app/engagement"
	"github.com/ahorify/ahorify/internal/domain"
)

// ─── Engagement API (/api/engagement, /api/progress) ────────────────────────

type recordEngagementRequest struct {
	Action   domain.ActionType      `json:"action"`
	Metadata *domain.ActionMetadata `json:"metadata,omitempty"`
}

// handleRecordEngagement registers an activity for the user and returns
// the full gamification outcome.
func (s *Server) handleRecordEngagement(w http.ResponseWriter, r *http.Request) {
	var req recordEngagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engagement.RecordEngagement(userID(r), req.Action, req.Metadata)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAction) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleProgress returns the user's progress snapshot: streak, level,
// points, milestones, and protections.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engagement.UserProgress(userID(r)))
}

// handleMilestones returns the static milestone ladder.
func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"milestones": engagement.Milestones(),
	})
}

// handleLevels returns the static level ladder.
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"levels": engagement.Levels(),
	})
}
