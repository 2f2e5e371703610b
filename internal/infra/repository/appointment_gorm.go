package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

// Teto da listagem geral
const listLimit = 1000

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointment depende do índice único parcial
// ux_appointments_active_slot para fechar a corrida entre duas reservas.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness(domain.CodeSlotConflict)
		}
		return err
	}
	return nil
}

func (r *AppointmentGormRepository) FindActiveInSlot(
	ctx context.Context,
	key domain.SlotKey,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"appointment_date = ? AND appointment_time = ? AND pro_id = ? AND status <> ?",
			key.Date, key.Time, key.ProID, string(domain.StatusCancelled),
		).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.Status,
	now time.Time,
) (*models.Appointment, error) {

	updates := map[string]any{"status": string(status)}
	switch status {
	case domain.StatusCompleted:
		updates["completed_at"] = now
	case domain.StatusCancelled:
		updates["cancelled_at"] = now
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(updates)

	if res.Error != nil {
		// reativar um cancelado cujo horário já foi tomado
		if httperr.IsUniqueViolation(res.Error) {
			return nil, httperr.ErrBusiness(domain.CodeSlotConflict)
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetAppointment(ctx, id)
}

func (r *AppointmentGormRepository) MarkReminderSent(
	ctx context.Context,
	id string,
	sentAt time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		Updates(map[string]any{
			"reminder_sent":    true,
			"reminder_sent_at": sentAt,
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.Client != "" {
		q = q.Where("client = ?", filter.Client)
	}
	if filter.ProID != 0 {
		q = q.Where("pro_id = ?", filter.ProID)
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date ASC, appointment_time ASC").
		Limit(listLimit).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListActiveForDay(
	ctx context.Context,
	date string,
	proID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"appointment_date = ? AND pro_id = ? AND status <> ?",
			date, proID, string(domain.StatusCancelled),
		).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListPendingForDates(
	ctx context.Context,
	dates []string,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"appointment_date IN ? AND status = ? AND reminder_sent = ?",
			dates, string(domain.StatusPending), false,
		).
		Order("appointment_date ASC, appointment_time ASC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
