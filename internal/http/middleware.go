package http

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey contextKey = "dryRun"
)

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// slackVerifyMiddleware rejects requests without a valid Slack signature.
// With an empty secret every request is let through.
func slackVerifyMiddleware(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			log.Warn("Slack signing secret not configured, slash commands are not verified")
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verifier, err := slack.NewSecretsVerifier(r.Header, secret)
			if err != nil {
				log.Warn("Invalid Slack request headers", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			body, err := io.ReadAll(io.TeeReader(r.Body, &verifier))
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusBadRequest)
				return
			}
			if err := verifier.Ensure(); err != nil {
				log.Warn("Slack signature verification failed", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
