package appointment

import (
	"time"

	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus muda o status e carimba o horário da conclusão/cancelamento.
// O lembrete nunca é tocado aqui: cancelar depois do envio não desfaz o envio.
func ApplyStatus(ap *models.Appointment, status Status, now time.Time) {
	ap.Status = string(status)

	switch status {
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}
}

// IsActive indica se o agendamento ainda ocupa o horário
func IsActive(ap *models.Appointment) bool {
	return Status(ap.Status) != StatusCancelled
}

// SlotKey identifica um horário reservável (data, hora, profissional)
type SlotKey struct {
	Date  string
	Time  string
	ProID uint
}

func KeyOf(ap *models.Appointment) SlotKey {
	return SlotKey{Date: ap.Date, Time: ap.Time, ProID: ap.ProID}
}
