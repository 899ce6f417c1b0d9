package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codingraft/FlowHaven/modules/journal"
)

func journalRoutes(svc *journal.Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", listEntries(svc))
		r.Post("/", createEntry(svc))
		r.Get("/{id}", getEntry(svc))
		r.Put("/{id}", updateEntry(svc))
		r.Delete("/{id}", deleteEntry(svc))
	}
}

func listEntries(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r)
		entries, err := svc.List(r.Context(), limit, offset)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

func getEntry(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		e, err := svc.Get(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

func createEntry(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e journal.Entry
		if !decodeBody(w, r, &e) {
			return
		}
		if err := svc.Create(r.Context(), &e); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, e)
	}
}

func updateEntry(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var e journal.Entry
		if !decodeBody(w, r, &e) {
			return
		}
		e.ID = id
		if err := svc.Update(r.Context(), &e); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

func deleteEntry(svc *journal.Service) http.HandlerFunc {
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
