package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codingraft/FlowHaven/modules/goal"
)

func goalRoutes(svc *goal.Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", listGoals(svc))
		r.Post("/", createGoal(svc))
		r.Get("/{id}", getGoal(svc))
		r.Put("/{id}", updateGoal(svc))
		r.Delete("/{id}", deleteGoal(svc))
	}
}

func listGoals(svc *goal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r)
		goals, err := svc.List(r.Context(), limit, offset)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, goals)
	}
}

func getGoal(svc *goal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		g, err := svc.Get(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, g)
	}
}

func createGoal(svc *goal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var g goal.Goal
		if !decodeBody(w, r, &g) {
			return
		}
		if err := svc.Create(r.Context(), &g); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, g)
	}
}

func updateGoal(svc *goal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var g goal.Goal
		if !decodeBody(w, r, &g) {
			return
		}
		g.ID = id
		if err := svc.Update(r.Context(), &g); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, g)
	}
}

func deleteGoal(svc *goal.Service) http.HandlerFunc {
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
