package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/agendai-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agendai-scheduler/internal/metrics"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

type UpdateAppointmentStatus struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	now func() time.Time,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		now:     now,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	appointmentID string,
	rawStatus string,
) (*models.Appointment, error) {

	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.UpdateStatus(ctx, appointmentID, status, uc.now())
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeNotFound)
	}
	if err != nil {
		return nil, err
	}

	uc.metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"status": ap.Status},
	})

	return ap, nil
}
