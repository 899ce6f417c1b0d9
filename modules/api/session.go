package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codingraft/FlowHaven/modules/auth"
	"github.com/codingraft/FlowHaven/pkg/fieldcrypt"
	"github.com/codingraft/FlowHaven/pkg/sessionkey"
)

type unlockRequest struct {
	Password string `json:"password"`
}

func sessionRoutes(salts *auth.SaltProvider, keys *sessionkey.Store) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/key", unlockSession(salts, keys))
		r.Delete("/key", lockSession(keys))
		r.Get("/key", sessionStatus(keys))
	}
}

// unlockSession derives the user's encryption key from their password and
// installs it for the session. The salt is provisioned on first unlock and
// immutable afterwards.
func unlockSession(salts *auth.SaltProvider, keys *sessionkey.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserID(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}

		var req unlockRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Password == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "password is required"})
			return
		}

		salt, err := salts.EnsureSalt(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}

		key, err := fieldcrypt.DeriveKey(req.Password, salt)
		if err != nil {
			respondError(w, err)
			return
		}

		if err := keys.Set(r.Context(), key, salt); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// lockSession drops the resident key and erases the persisted copy, the
// logout half of the key lifecycle.
func lockSession(keys *sessionkey.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.UserID(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		if err := keys.Clear(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func sessionStatus(keys *sessionkey.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.UserID(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"unlocked": keys.Has()})
	}
}
