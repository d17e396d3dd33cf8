// Package server provides HTTP routing, middleware and the serve loop for the local web front-end.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] for paths and a method table per path. An empty
// method is the fallback for a path, which lets "/" act as the catch-all route.
//
// # Middleware
//
//   - [RequestID] tags each request with a uuid, echoed in the X-Request-ID header
//   - [AccessLog] writes one log line per request
//   - [Recover] turns handler panics into 500 responses
//
// # Serving
//
// [ServeListener] runs an [http.Server] until its context is cancelled, then shuts it down gracefully.
package server
