package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/codingraft/FlowHaven/modules/auth"
	"github.com/codingraft/FlowHaven/modules/goal"
	"github.com/codingraft/FlowHaven/modules/habit"
	"github.com/codingraft/FlowHaven/modules/journal"
	"github.com/codingraft/FlowHaven/modules/pomodoro"
	"github.com/codingraft/FlowHaven/modules/task"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, task.ErrNotFound),
		errors.Is(err, habit.ErrNotFound),
		errors.Is(err, goal.ErrNotFound),
		errors.Is(err, journal.ErrNotFound),
		errors.Is(err, pomodoro.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, task.ErrRateLimited),
		errors.Is(err, habit.ErrRateLimited),
		errors.Is(err, goal.ErrRateLimited),
		errors.Is(err, journal.ErrRateLimited),
		errors.Is(err, pomodoro.ErrRateLimited):
		respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: err.Error()})
	case errors.Is(err, pomodoro.ErrBadDuration):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads limit/offset query params with sane defaults and caps.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = min(v, maxPageSize)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
