package middleware

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// SetSentryScenario tags the request's Sentry scope with the demo scenario.
func SetSentryScenario(ctx context.Context, scenario string) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("scenario", scenario)
		if id := GetRequestID(ctx); id != "" {
			hub.Scope().SetTag("request_id", id)
		}
	}
}

// CaptureError reports err to the request's Sentry hub, falling back to the
// global hub when the request was not instrumented.
func CaptureError(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
