package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(100).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).First(&service, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *CatalogGormRepository) UpdateService(
	ctx context.Context,
	id uint,
	upd catalog.ServiceUpdate,
) (*models.Service, error) {

	service, err := r.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if !upd.Apply(service) {
		return service, nil
	}

	if err := r.db.WithContext(ctx).Save(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *CatalogGormRepository) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	var pros []models.Professional
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(100).Find(&pros).Error; err != nil {
		return nil, err
	}
	return pros, nil
}

func (r *CatalogGormRepository) GetProfessional(ctx context.Context, id uint) (*models.Professional, error) {
	var pro models.Professional
	err := r.db.WithContext(ctx).First(&pro, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrProfessionalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pro, nil
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
