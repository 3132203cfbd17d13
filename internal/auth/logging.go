package auth

import (
	"findjob-backend/internal/logger"

	"github.com/rs/zerolog"
)

// LogAuthAttempt records an authentication attempt.
// authType: Local|Token, status: Success|Fail, identifier: username or user id.
func LogAuthAttempt(level zerolog.Level, authType string, status string, identifier string, message string) {
	log := logger.Get()
	ev := log.WithLevel(level).
		Str("component", "auth").
		Str("auth_type", authType).
		Str("status", status)
	if identifier != "" {
		ev = ev.Str("identifier", identifier)
	}
	ev.Msg(message)
}
