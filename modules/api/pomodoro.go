package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codingraft/FlowHaven/modules/pomodoro"
)

func pomodoroRoutes(svc *pomodoro.Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", listSessions(svc))
		r.Post("/", logSession(svc))
		r.Delete("/{id}", deleteSession(svc))
	}
}

func listSessions(svc *pomodoro.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := svc.ListRecent(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, sessions)
	}
}

func logSession(svc *pomodoro.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s pomodoro.Session
		if !decodeBody(w, r, &s) {
			return
		}
		if err := svc.Log(r.Context(), &s); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, s)
	}
}

func deleteSession(svc *pomodoro.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
