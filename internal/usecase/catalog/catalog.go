package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/agendai-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

// ======================================================
// LIST
// ======================================================

type ListCatalog struct {
	repo domain.Repository
}

func NewListCatalog(repo domain.Repository) *ListCatalog {
	return &ListCatalog{repo: repo}
}

func (uc *ListCatalog) Services(ctx context.Context) ([]models.Service, error) {
	return uc.repo.ListServices(ctx)
}

func (uc *ListCatalog) Professionals(ctx context.Context) ([]models.Professional, error) {
	return uc.repo.ListProfessionals(ctx)
}

// ======================================================
// UPDATE SERVICE
// ======================================================

type UpdateService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateService(repo domain.Repository, audit *audit.Dispatcher) *UpdateService {
	return &UpdateService{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateService) Execute(
	ctx context.Context,
	id uint,
	upd domain.ServiceUpdate,
) (*models.Service, error) {

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, httperr.ErrBusiness(domain.CodeInvalidService)
		}
		upd.Name = &name
	}
	if upd.Duration != nil && *upd.Duration <= 0 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidService)
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidService)
	}

	svc, err := uc.repo.UpdateService(ctx, id, upd)
	if errors.Is(err, domain.ErrServiceNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeServiceNotFound)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "service_updated",
		Entity:   "service",
		EntityID: strconv.FormatUint(uint64(svc.ID), 10),
		Metadata: map[string]any{
			"name":     svc.Name,
			"duration": svc.Duration,
			"price":    svc.Price,
		},
	})

	return svc, nil
}
