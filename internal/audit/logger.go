package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

// Writer persiste eventos de auditoria
type Writer interface {
	Write(ctx context.Context, ev Event) error
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	entry := models.AuditLog{
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: encodeMetadata(ev.Metadata),
	}

	return l.db.WithContext(ctx).Create(&entry).Error
}

// SlogWriter grava a trilha no log estruturado (driver em memória).
type SlogWriter struct {
	log *slog.Logger
}

func NewSlogWriter(log *slog.Logger) *SlogWriter {
	return &SlogWriter{log: log}
}

func (w *SlogWriter) Write(ctx context.Context, ev Event) error {
	w.log.InfoContext(ctx, "audit",
		"action", ev.Action,
		"entity", ev.Entity,
		"entity_id", ev.EntityID,
		"metadata", encodeMetadata(ev.Metadata),
	)
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
