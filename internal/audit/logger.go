package audit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Logger stores events in the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := models.AuditLog{
		UserID:   ev.UserID,
		Role:     ev.Role,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: encode(ev.Metadata),
	}
	return l.db.WithContext(ctx).Create(&row).Error
}

func encode(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}

// LogSink writes events as structured log lines. Used when there is no
// database (STORE_DRIVER=memory).
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{log: logger}
}

func (s *LogSink) Log(_ context.Context, ev Event) error {
	evt := s.log.Info().
		Str("action", ev.Action).
		Str("entity", ev.Entity).
		Str("role", ev.Role)
	if ev.UserID != nil {
		evt = evt.Uint("user_id", *ev.UserID)
	}
	if ev.EntityID != nil {
		evt = evt.Uint("entity_id", *ev.EntityID)
	}
	if m := encode(ev.Metadata); m != "" {
		evt = evt.RawJSON("metadata", []byte(m))
	}
	evt.Msg("audit")
	return nil
}
