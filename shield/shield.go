// Package shield provides reusable HTTP middleware for JSON API services.
// It consolidates security headers, body limits, request tracing, and HEAD
// method handling into a single importable package.
//
// Usage:
//
//	r := chi.NewRouter()
//	r.Use(shield.SecurityHeaders(shield.DefaultHeaders()))
//	r.Use(shield.MaxJSONBody(64 * 1024))
//	r.Use(shield.TraceID)
//	r.Use(shield.HeadToGet)
//
// Or apply the default stack in one call:
//
//	for _, mw := range shield.DefaultAPIStack() {
//	    r.Use(mw)
//	}
package shield

import (
	"net/http"
)

type contextKey string

// LoggerKey is the context key for the per-request structured logger.
const LoggerKey contextKey = "shield_logger"

// DefaultAPIStack returns the standard middleware stack for a JSON API
// service. Middleware is ordered: HeadToGet → SecurityHeaders →
// MaxJSONBody → TraceID.
func DefaultAPIStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		HeadToGet,
		SecurityHeaders(DefaultHeaders()),
		MaxJSONBody(64 * 1024),
		TraceID,
	}
}
