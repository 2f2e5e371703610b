package catalog

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

// Códigos de negócio do catálogo
const (
	CodeServiceNotFound = "service_not_found"
	CodeInvalidService  = "invalid_service"
)

var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrProfessionalNotFound = errors.New("professional not found")
)

// ServiceUpdate atualização parcial; nil = mantém
type ServiceUpdate struct {
	Name     *string
	Duration *int
	Price    *float64
}

type Repository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	UpdateService(ctx context.Context, id uint, upd ServiceUpdate) (*models.Service, error)

	ListProfessionals(ctx context.Context) ([]models.Professional, error)
	GetProfessional(ctx context.Context, id uint) (*models.Professional, error)
}

// Apply copia os campos informados; false quando nada mudou.
func (u ServiceUpdate) Apply(s *models.Service) bool {
	changed := false
	if u.Name != nil {
		s.Name = *u.Name
		changed = true
	}
	if u.Duration != nil {
		s.Duration = *u.Duration
		changed = true
	}
	if u.Price != nil {
		s.Price = *u.Price
		changed = true
	}
	return changed
}
