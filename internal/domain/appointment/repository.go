package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

// ListFilter filtros opcionais da listagem (zero = sem filtro)
type ListFilter struct {
	Client string
	ProID  uint
}

type Repository interface {
	// -------- Appointment (create / conflict) --------

	// CreateAppointment insere o registro. Se já existir agendamento ativo
	// no mesmo (data, hora, profissional) devolve o erro de negócio slot_conflict.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	FindActiveInSlot(
		ctx context.Context,
		key SlotKey,
	) (*models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateStatus(
		ctx context.Context,
		id string,
		status Status,
		now time.Time,
	) (*models.Appointment, error)

	// MarkReminderSent só altera se reminder_sent ainda for false.
	// Retorna false quando outro processo marcou primeiro.
	MarkReminderSent(
		ctx context.Context,
		id string,
		sentAt time.Time,
	) (bool, error)

	// -------- Queries --------
	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	ListActiveForDay(
		ctx context.Context,
		date string,
		proID uint,
	) ([]models.Appointment, error)

	// ListPendingForDates lista pendentes ainda sem lembrete enviado.
	ListPendingForDates(
		ctx context.Context,
		dates []string,
		limit int,
	) ([]models.Appointment, error)
}
