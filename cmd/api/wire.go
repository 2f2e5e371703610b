package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendai-scheduler/internal/audit"
	"github.com/BruksfildServices01/agendai-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/agendai-scheduler/internal/db"
	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/agendai-scheduler/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/agendai-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/agendai-scheduler/internal/notification"
	"github.com/BruksfildServices01/agendai-scheduler/internal/usecase/reminder"
)

const reminderLockKey = "agendai:reminder-scan"

type stores struct {
	appointments domain.Repository
	catalog      catalog.Repository
	auditWriter  audit.Writer
	db           *gorm.DB
	close        func()
}

func openStores(cfg *config.Config, log *slog.Logger) (*stores, error) {
	if cfg.StoreDriver == "memory" {
		log.Warn("using in-memory store, data is lost on restart")
		return &stores{
			appointments: memory.NewAppointmentStore(),
			catalog:      memory.NewCatalogStore(catalog.DefaultServices(), catalog.DefaultProfessionals()),
			auditWriter:  audit.NewSlogWriter(log),
			close:        func() {},
		}, nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}

	return &stores{
		appointments: infraRepo.NewAppointmentGormRepository(db),
		catalog:      infraRepo.NewCatalogGormRepository(db),
		auditWriter:  audit.New(db),
		db:           db,
		close: func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	}, nil
}

func newNotifier(cfg *config.Config, log *slog.Logger) notification.Dispatcher {
	n := cfg.Notifier

	switch n.Driver {
	case "smtp":
		return notification.NewSMTPDispatcher(notification.SMTPConfig{
			Host:      n.SMTPHost,
			Port:      n.SMTPPort,
			Username:  n.SMTPUsername,
			Password:  n.SMTPPassword,
			FromEmail: n.SenderEmail,
			FromName:  n.SenderName,
		})
	case "resend":
		from := fmt.Sprintf("%s <%s>", n.SenderName, n.SenderEmail)
		return notification.NewResendDispatcher(n.ResendAPIKey, n.ResendURL, from, &http.Client{
			Timeout: cfg.Reminder.DispatchTimeout,
		})
	default:
		return notification.NewLogDispatcher(log)
	}
}

// newTickLock usa Redis quando configurado (várias réplicas); senão mutex local.
func newTickLock(ctx context.Context, cfg *config.Config, log *slog.Logger) (reminder.TickLock, func(), error) {
	if cfg.RedisURL == "" {
		return lock.NewLocalLock(), func() {}, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rdb, err := lock.NewRedisClient(pingCtx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	log.Info("reminder scan lock on redis", "key", reminderLockKey, "ttl", cfg.Reminder.LockTTL.String())
	return lock.NewRedisLock(rdb, reminderLockKey, cfg.Reminder.LockTTL, log), func() { _ = rdb.Close() }, nil
}
