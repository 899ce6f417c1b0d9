// Package pg bootstraps the application's PostgreSQL layer on the pgx/v5
// driver: connection pooling with retry, goose schema migrations, and a
// health-check helper.
//
// Entity repositories receive the *pgxpool.Pool and speak pgx directly; this
// package only owns getting a healthy, migrated pool at startup.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    // persistence is a hard dependency, terminate
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    // schema must be current before serving traffic
//	}
//
// # Errors
//
// Sentinel errors wrap the underlying driver errors via errors.Join. The
// IsNotFoundError and IsDuplicateKeyError helpers classify the two
// conditions repositories branch on.
package pg
