package errorscope

import "github.com/getsentry/sentry-go"

type sentryScope struct {
	hub *sentry.Hub
}

// NewSentryScope returns a Scope configuring hub's current scope.
func NewSentryScope(hub *sentry.Hub) Scope {
	return &sentryScope{hub: hub}
}

func (s *sentryScope) SetTag(key, value string) {
	if s.hub == nil {
		return
	}
	s.hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag(key, value)
	})
}

func (s *sentryScope) SetContext(key string, value map[string]interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetContext(key, value)
	})
}

// CaptureMessage sends message at error level with the current scope data.
func (s *sentryScope) CaptureMessage(message string) {
	if s.hub == nil {
		return
	}
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		s.hub.CaptureMessage(message)
	})
}
