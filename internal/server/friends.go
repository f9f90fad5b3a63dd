package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ybdev/birthdayd/internal/store"
)

type friendJSON struct {
	ID       int64   `json:"id"`
	FullName string  `json:"full_name"`
	Birthday apiDate `json:"birthday"`
}

func friendToJSON(f store.Friend) friendJSON {
	return friendJSON{ID: f.ID, FullName: f.FullName, Birthday: apiDate{f.Birthday}}
}

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	friends, err := s.db.ListFriends(skip, limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	out := make([]friendJSON, len(friends))
	for i, f := range friends {
		out[i] = friendToJSON(f)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateFriend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string  `json:"full_name"`
		Birthday apiDate `json:"birthday"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.FullName == "" {
		writeError(w, http.StatusBadRequest, "full_name must not be empty")
		return
	}
	if req.Birthday.IsZero() {
		writeError(w, http.StatusBadRequest, "birthday is required (dd.mm.yyyy)")
		return
	}

	f, err := s.db.CreateFriend(req.FullName, req.Birthday.Time)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendToJSON(*f))
}

func (s *Server) handleUpdateFriend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "friendID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid friend id")
		return
	}

	var req struct {
		FullName *string  `json:"full_name"`
		Birthday *apiDate `json:"birthday"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.FullName != nil && *req.FullName == "" {
		writeError(w, http.StatusBadRequest, "full_name must not be empty")
		return
	}

	update := func() (*store.Friend, error) {
		if req.Birthday != nil {
			return s.db.UpdateFriend(id, req.FullName, &req.Birthday.Time)
		}
		return s.db.UpdateFriend(id, req.FullName, nil)
	}

	f, err := update()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendToJSON(*f))
}

func (s *Server) handleDeleteFriend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "friendID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid friend id")
		return
	}

	if err := s.db.DeleteFriend(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Status: "deleted", ID: id})
}

func pathID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
