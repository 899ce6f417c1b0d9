// Package logger builds configured log/slog loggers for the application.
//
// The factory applies functional options for level, format (JSON for
// production aggregation, text for development), output and static
// attributes, and wraps the handler in a decorator that pulls dynamic
// attributes out of the request context — so the authenticated user id or a
// request id appears on every record without threading it through call
// sites.
//
//	log := logger.New(
//	    logger.WithService("flowhaven"),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithContextValue("user_id", auth.CtxKeyUserID),
//	)
//	logger.SetAsDefault(log)
package logger
