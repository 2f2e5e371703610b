package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/agendai-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agendai-scheduler/internal/metrics"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
	"github.com/BruksfildServices01/agendai-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Client      string
	ClientEmail string
	ClientPhone string

	ProID     uint
	ServiceID uint

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Entrada
	// --------------------------------------------------
	client := strings.TrimSpace(in.Client)
	if client == "" || in.ProID == 0 || in.ServiceID == 0 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidRequest)
	}

	date, err := domain.NormalizeDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}
	hm, err := domain.NormalizeTime(in.Time)
	if err != nil || !domain.OnGrid(hm) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	email := strings.TrimSpace(in.ClientEmail)
	if email != "" && !validators.IsEmailValid(email) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidEmail)
	}

	key := domain.SlotKey{Date: date, Time: hm, ProID: in.ProID}

	// --------------------------------------------------
	// 2️⃣ Pré-checagem de conflito (atalho; o índice único decide)
	// --------------------------------------------------
	existing, err := uc.repo.FindActiveInSlot(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.conflict(key)
		return nil, httperr.ErrBusiness(domain.CodeSlotConflict)
	}

	// --------------------------------------------------
	// 3️⃣ Criação
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:          uuid.NewString(),
		Client:      client,
		ClientEmail: email,
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		ProID:       in.ProID,
		ServiceID:   in.ServiceID,
		Date:        date,
		Time:        hm,
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, domain.CodeSlotConflict) {
			uc.conflict(key)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.metrics.BookingsCreated.Inc()
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"date":  ap.Date,
			"time":  ap.Time,
			"proId": ap.ProID,
		},
	})

	return ap, nil
}

func (uc *CreateAppointment) conflict(key domain.SlotKey) {
	uc.metrics.BookingConflicts.Inc()
	uc.audit.Dispatch(audit.Event{
		Action: "appointment_conflict",
		Entity: "appointment",
		Metadata: map[string]any{
			"date":  key.Date,
			"time":  key.Time,
			"proId": key.ProID,
		},
	})
}
