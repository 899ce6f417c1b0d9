package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codingraft/FlowHaven/modules/habit"
)

func habitRoutes(svc *habit.Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", listHabits(svc))
		r.Post("/", createHabit(svc))
		r.Get("/{id}", getHabit(svc))
		r.Put("/{id}", updateHabit(svc))
		r.Post("/{id}/checkin", checkInHabit(svc))
		r.Delete("/{id}", deleteHabit(svc))
	}
}

func listHabits(svc *habit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r)
		habits, err := svc.List(r.Context(), limit, offset)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, habits)
	}
}

func getHabit(svc *habit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		h, err := svc.Get(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, h)
	}
}

func createHabit(svc *habit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var h habit.Habit
		if !decodeBody(w, r, &h) {
			return
		}
		if err := svc.Create(r.Context(), &h); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, h)
	}
}

func updateHabit(svc *habit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var h habit.Habit
		if !decodeBody(w, r, &h) {
			return
		}
		h.ID = id
		if err := svc.Update(r.Context(), &h); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, h)
	}
}

func checkInHabit(svc *habit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		h, err := svc.CheckIn(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, h)
	}
}

func deleteHabit(svc *habit.Service) http.HandlerFunc {
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
