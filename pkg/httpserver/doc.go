// Package httpserver wraps net/http with graceful shutdown, env-driven
// timeouts, lifecycle hooks, and probe handlers.
//
// Run blocks until the context is cancelled, an interrupt or TERM signal
// arrives, or the listener fails. Shutdown uses http.Server.Shutdown with a
// configurable deadline and is safe to call more than once. Listen failures
// wrap ErrStart; shutdown failures wrap ErrShutdown.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", "error", err)
//	}
package httpserver
