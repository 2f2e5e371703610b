package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

type CatalogStore struct {
	mu       sync.RWMutex
	services map[uint]models.Service
	pros     map[uint]models.Professional
}

func NewCatalogStore(services []models.Service, pros []models.Professional) *CatalogStore {
	s := &CatalogStore{
		services: make(map[uint]models.Service, len(services)),
		pros:     make(map[uint]models.Professional, len(pros)),
	}
	for _, svc := range services {
		s.services[svc.ID] = svc
	}
	for _, p := range pros {
		s.pros[p.ID] = p
	}
	return s
}

func (s *CatalogStore) ListServices(context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc)
	}
	slices.SortFunc(out, func(a, b models.Service) int { return int(a.ID) - int(b.ID) })
	return out, nil
}

func (s *CatalogStore) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return &svc, nil
}

func (s *CatalogStore) UpdateService(_ context.Context, id uint, upd catalog.ServiceUpdate) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	upd.Apply(&svc)
	s.services[id] = svc
	return &svc, nil
}

func (s *CatalogStore) ListProfessionals(context.Context) ([]models.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Professional, 0, len(s.pros))
	for _, p := range s.pros {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b models.Professional) int { return int(a.ID) - int(b.ID) })
	return out, nil
}

func (s *CatalogStore) GetProfessional(_ context.Context, id uint) (*models.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pros[id]
	if !ok {
		return nil, catalog.ErrProfessionalNotFound
	}
	return &p, nil
}

var _ catalog.Repository = (*CatalogStore)(nil)
