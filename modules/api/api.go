package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/codingraft/FlowHaven/modules/auth"
	"github.com/codingraft/FlowHaven/modules/goal"
	"github.com/codingraft/FlowHaven/modules/habit"
	"github.com/codingraft/FlowHaven/modules/journal"
	"github.com/codingraft/FlowHaven/modules/pomodoro"
	"github.com/codingraft/FlowHaven/modules/task"
	"github.com/codingraft/FlowHaven/pkg/clientip"
	"github.com/codingraft/FlowHaven/pkg/ratelimit"
	"github.com/codingraft/FlowHaven/pkg/sessionkey"
)

// Services collects the module services the router exposes. Salts and Keys
// are optional; the session key endpoints are mounted only when both are
// present.
type Services struct {
	Tasks    *task.Service
	Habits   *habit.Service
	Goals    *goal.Service
	Journal  *journal.Service
	Pomodoro *pomodoro.Service
	Salts    *auth.SaltProvider
	Keys     *sessionkey.Store
}

// Router assembles the API surface: request ID and recovery, client IP
// extraction, IP-level rate limiting for unauthenticated abuse protection,
// identity propagation, then the per-entity routes. Per-user limits are
// enforced inside the services.
func Router(svcs Services, ipLimiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(clientip.Middleware)
	if ipLimiter != nil {
		r.Use(ratelimit.Middleware(ipLimiter, func(req *http.Request) string {
			ip := clientip.GetIPFromContext(req.Context())
			if ip == "" {
				return ""
			}
			return ratelimit.IPKey("api", ip)
		}))
	}
	r.Use(auth.Middleware)

	if svcs.Salts != nil && svcs.Keys != nil {
		r.Route("/session", sessionRoutes(svcs.Salts, svcs.Keys))
	}
	r.Route("/tasks", taskRoutes(svcs.Tasks))
	r.Route("/habits", habitRoutes(svcs.Habits))
	r.Route("/goals", goalRoutes(svcs.Goals))
	r.Route("/journal", journalRoutes(svcs.Journal))
	r.Route("/pomodoro", pomodoroRoutes(svcs.Pomodoro))

	return r
}
