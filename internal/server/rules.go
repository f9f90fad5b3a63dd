package server

import (
	"encoding/json"
	"net/http"

	"github.com/ybdev/birthdayd/internal/store"
)

// defaultRuleHour is used when a create request omits the hour,
// matching the schema default.
const defaultRuleHour = 10

type ruleJSON struct {
	ID         int64 `json:"id"`
	DaysBefore int   `json:"days_before"`
	Hour       int   `json:"hour"`
}

func ruleToJSON(r store.Rule) ruleJSON {
	return ruleJSON{ID: r.ID, DaysBefore: r.DaysBefore, Hour: r.Hour}
}

func validHour(h int) bool { return h >= 0 && h <= 23 }

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.db.ListRules()
	if err != nil {
		writeStoreError(w, err)
		return
	}

	out := make([]ruleJSON, len(rules))
	for i, rule := range rules {
		out[i] = ruleToJSON(rule)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DaysBefore *int `json:"days_before"`
		Hour       *int `json:"hour"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DaysBefore == nil {
		writeError(w, http.StatusBadRequest, "days_before is required")
		return
	}
	if *req.DaysBefore < 0 {
		writeError(w, http.StatusBadRequest, "days_before must not be negative")
		return
	}

	hour := defaultRuleHour
	if req.Hour != nil {
		hour = *req.Hour
	}
	if !validHour(hour) {
		writeError(w, http.StatusBadRequest, "hour must be between 0 and 23")
		return
	}

	rule, err := s.db.CreateRule(*req.DaysBefore, hour)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ruleToJSON(*rule))
}

func (s *Server) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ruleID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rule id")
		return
	}

	var req struct {
		DaysBefore *int `json:"days_before"`
		Hour       *int `json:"hour"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DaysBefore != nil && *req.DaysBefore < 0 {
		writeError(w, http.StatusBadRequest, "days_before must not be negative")
		return
	}
	if req.Hour != nil && !validHour(*req.Hour) {
		writeError(w, http.StatusBadRequest, "hour must be between 0 and 23")
		return
	}

	rule, err := s.db.UpdateRule(id, req.DaysBefore, req.Hour)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ruleToJSON(*rule))
}

func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ruleID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rule id")
		return
	}

	if err := s.db.DeleteRule(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Status: "deleted", ID: id})
}
