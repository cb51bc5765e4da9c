// Package middleware holds the HTTP middleware stack: request ids, request
// logging, panic recovery, bearer token auth and Prometheus metrics. CORS
// and rate limiting come from the chi ecosystem and are wired in the app.
package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler
