package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codingraft/FlowHaven/modules/task"
)

func taskRoutes(svc *task.Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", listTasks(svc))
		r.Post("/", createTask(svc))
		r.Get("/{id}", getTask(svc))
		r.Put("/{id}", updateTask(svc))
		r.Delete("/{id}", deleteTask(svc))
	}
}

func listTasks(svc *task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r)
		tasks, err := svc.List(r.Context(), limit, offset)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, tasks)
	}
}

func getTask(svc *task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		t, err := svc.Get(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, t)
	}
}

func createTask(svc *task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t task.Task
		if !decodeBody(w, r, &t) {
			return
		}
		if err := svc.Create(r.Context(), &t); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, t)
	}
}

func updateTask(svc *task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var t task.Task
		if !decodeBody(w, r, &t) {
			return
		}
		t.ID = id
		if err := svc.Update(r.Context(), &t); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, t)
	}
}

func deleteTask(svc *task.Service) http.HandlerFunc {
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
