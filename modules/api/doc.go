// Package api mounts the HTTP surface over the entity services. Handlers
// stay thin: decode, delegate, map sentinel errors to status codes. All
// caching, rate limiting and field encryption lives in the services.
package api
