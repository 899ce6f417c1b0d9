// Package clientip extracts the originating client IP from HTTP requests,
// looking through the usual reverse-proxy headers before falling back to the
// socket address.
//
// The extracted IP feeds the IP-scoped rate limit keys. The middleware
// stores it in the request context so handlers and limiters read it without
// re-parsing headers:
//
//	r.Use(clientip.Middleware)
//	...
//	ip := clientip.GetIPFromContext(r.Context())
package clientip
