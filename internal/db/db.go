package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/agendai-scheduler/internal/config"
	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

// Um único agendamento não cancelado por (data, hora, profissional).
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_active_slot
	ON appointments (appointment_date, appointment_time, pro_id)
	WHERE status <> 'cancelled'
`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Service{},
		&models.Professional{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return nil, fmt.Errorf("create slot index: %w", err)
	}

	if cfg.SeedData {
		if err := seedCatalog(db); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	return db, nil
}

func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		services := catalog.DefaultServices()
		if err := db.Create(&services).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Professional{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		pros := catalog.DefaultProfessionals()
		if err := db.Create(&pros).Error; err != nil {
			return err
		}
	}
	return nil
}
