package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Logger defines the interface for auditing operations
type Logger interface {
	// LogAction records a mutating operation: who did what to which entity.
	LogAction(
		ctx context.Context,
		actorID uuid.UUID,
		action string,
		entityType string,
		entityID string,
		fields map[string]interface{},
	)
}

// SlogLogger writes audit entries through the structured logger.
type SlogLogger struct {
	log *slog.Logger
}

func NewSlogLogger(log *slog.Logger) *SlogLogger {
	return &SlogLogger{log: log}
}

// LogAction implements Logger.LogAction
func (l *SlogLogger) LogAction(
	ctx context.Context,
	actorID uuid.UUID,
	action string,
	entityType string,
	entityID string,
	fields map[string]interface{},
) {
	attrs := []any{
		"actor", actorID.String(),
		"action", action,
		"entity_type", entityType,
		"entity_id", entityID,
	}
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	l.log.InfoContext(ctx, "audit", attrs...)
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// LogAction implements Logger.LogAction
func (l *NoOpLogger) LogAction(
	ctx context.Context,
	actorID uuid.UUID,
	action string,
	entityType string,
	entityID string,
	fields map[string]interface{},
) {
}
