package jwtauth

import (
	"log/slog"
	"time"
)

// SecurityEvent represents a structured security log entry
type SecurityEvent struct {
	EventType     string        // "success" or "failure"
	Timestamp     time.Time     // Event timestamp
	RequestID     string        // Correlation ID
	Transport     string        // "http" or "grpc"
	UserID        string        // Subject from the payload, if any
	Algorithm     string        // Configured signing strategy
	Outcome       Outcome       // Authentication outcome
	FailureReason string        // Error code (on failure)
	TokenPreview  string        // Redacted token preview
	Latency       time.Duration // Validation latency
}

// LogValue implements slog.LogValuer for structured logging with redaction
func (e SecurityEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("event", e.EventType),
		slog.Time("timestamp", e.Timestamp),
		slog.String("request_id", e.RequestID),
		slog.String("transport", e.Transport),
		slog.String("user_id", e.UserID),
		slog.String("algorithm", e.Algorithm),
		slog.String("outcome", e.Outcome.String()),
		slog.String("failure_reason", e.FailureReason),
		slog.String("token", redactToken(e.TokenPreview)),
		slog.Duration("latency", e.Latency),
	)
}

// redactToken redacts sensitive token data
func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

// logSecurityEvent emits a security event via the configured logger
func logSecurityEvent(logger *slog.Logger, event SecurityEvent) {
	if logger == nil {
		return // Logging disabled
	}

	if event.EventType == "failure" {
		logger.Warn("authentication failed", "auth_event", event)
	} else {
		logger.Info("authentication succeeded", "auth_event", event)
	}
}

// recordAuthentication logs and counts one authentication attempt. err is
// set when the token could not be extracted; otherwise res is used.
func recordAuthentication(cfg *Config, transport, requestID, token string, res Result, err error, latency time.Duration) {
	outcome := res.Outcome()
	observeAuthentication(transport, outcome, err != nil, latency)

	if cfg.Logger() == nil {
		return
	}

	event := SecurityEvent{
		EventType:    "success",
		Timestamp:    time.Now(),
		RequestID:    requestID,
		Transport:    transport,
		Algorithm:    cfg.Algorithm(),
		Outcome:      outcome,
		TokenPreview: token,
		Latency:      latency,
	}
	if payload, ok := res.Payload().Get(); ok {
		event.UserID = payload.Subject().ValueOr("")
	}

	switch {
	case err != nil:
		event.EventType = "failure"
		event.FailureReason = getErrorCode(err)
	case !res.Verified():
		event.EventType = "failure"
		event.FailureReason = getErrorCode(res.Reason())
	}

	logSecurityEvent(cfg.Logger(), event)
}
