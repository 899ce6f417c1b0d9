// Package ratelimit provides a counting-window rate limiter sharing the
// cache package's backend, used for abuse protection on the entity read
// paths.
//
// The algorithm is a fixed window over INCR+EXPIRE: the first increment of a
// key establishes the window's expiry, subsequent increments accumulate
// until the key expires. Keys are scoped per operation group and identity,
// "rl:<scope>:ip:<ip>" for unauthenticated abuse protection (looser limits)
// and "rl:<scope>:user:<userID>" for per-account quotas (stricter limits).
//
// A rejected request is a normal result — callers decide what follows (empty
// page, 429). A backend error is never surfaced: the limiter fails open and
// logs, because availability beats strict throttling here.
//
//	limiter, _ := ratelimit.New(store, 100, time.Minute)
//	res := limiter.Allow(ctx, ratelimit.UserKey("entities", userID))
//	if !res.Allowed {
//	    // serve the throttled path
//	}
package ratelimit
