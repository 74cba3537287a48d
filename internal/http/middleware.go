package http

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/http/handlers"
	"github.com/slack-go/slack"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			// The level is global, so concurrent requests log verbosely too.
			defer log.SetLevel(originalLevel)
		}

		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), handlers.DryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// slackVerifier rejects requests without a valid Slack signature. Without a
// signing secret every request is let through.
func slackVerifier(signingSecret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if signingSecret == "" {
				log.Warn("Slack signing secret not configured, skipping request verification")
				next.ServeHTTP(w, r)
				return
			}
			verifier, err := slack.NewSecretsVerifier(r.Header, signingSecret)
			if err != nil {
				log.Warn("Invalid Slack request headers", "error", err)
				http.Error(w, "Invalid Slack request", http.StatusUnauthorized)
				return
			}
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusInternalServerError)
				return
			}
			if _, err := verifier.Write(body); err != nil {
				http.Error(w, "Failed to verify request", http.StatusInternalServerError)
				return
			}
			if err := verifier.Ensure(); err != nil {
				log.Warn("Slack signature mismatch", "error", err)
				http.Error(w, "Invalid Slack signature", http.StatusUnauthorized)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
