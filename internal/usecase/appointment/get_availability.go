package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute devolve a grade livre e os horários já ocupados do profissional.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	if in.ProID == 0 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidRequest)
	}

	date, err := domain.NormalizeDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	appointments, err := uc.repo.ListActiveForDay(ctx, date, in.ProID)
	if err != nil {
		return nil, err
	}

	booked := make([]string, 0, len(appointments))
	for _, ap := range appointments {
		booked = append(booked, ap.Time)
	}

	return &domain.Availability{
		Available: domain.FreeSlots(booked),
		Booked:    booked,
	}, nil
}
