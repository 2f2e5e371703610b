package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/agendai-scheduler/internal/audit"
	"github.com/BruksfildServices01/agendai-scheduler/internal/config"
	"github.com/BruksfildServices01/agendai-scheduler/internal/logging"
	"github.com/BruksfildServices01/agendai-scheduler/internal/metrics"
	"github.com/BruksfildServices01/agendai-scheduler/internal/routes"
	"github.com/BruksfildServices01/agendai-scheduler/internal/scheduler"
	"github.com/BruksfildServices01/agendai-scheduler/internal/timezone"
	"github.com/BruksfildServices01/agendai-scheduler/internal/usecase/reminder"
)

const serviceName = "agendai-scheduler"

func main() {

	cfg := config.Load()
	logger := logging.New(serviceName, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := timezone.Location(cfg.Timezone)
	now := timezone.Clock(loc)

	// ======================================================
	// 📦 STORE
	// ======================================================
	st, err := openStores(cfg, logger)
	if err != nil {
		logger.Error("store setup failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer st.close()

	auditDispatcher := audit.NewDispatcher(st.auditWriter, logger)
	defer auditDispatcher.Close()

	// ======================================================
	// 📈 METRICS
	// ======================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg, "agendai")

	// ======================================================
	// ⏰ LEMBRETES
	// ======================================================
	var sched *scheduler.Scheduler
	if cfg.Reminder.Enabled {
		tickLock, closeLock, err := newTickLock(ctx, cfg, logger)
		if err != nil {
			logger.Error("reminder lock setup failed", "err", err)
			os.Exit(1)
		}
		defer closeLock()

		scanner := reminder.NewScanner(
			st.appointments,
			st.catalog,
			newNotifier(cfg, logger),
			tickLock,
			m,
			logger.With("component", "reminder_scanner"),
			reminder.Config{
				Lead:            cfg.Reminder.Lead,
				Window:          cfg.Reminder.Window,
				Limit:           cfg.Reminder.ScanLimit,
				DispatchTimeout: cfg.Reminder.DispatchTimeout,
				Concurrency:     cfg.Reminder.Concurrency,
				Location:        loc,
			},
			now,
		)

		sched = scheduler.New(loc, logger.With("component", "scheduler"))
		err = sched.Add("appointment_reminders", cfg.Reminder.Cron, func(ctx context.Context) error {
			_, err := scanner.Run(ctx)
			if errors.Is(err, reminder.ErrTickBusy) {
				return nil
			}
			return err
		})
		if err != nil {
			logger.Error("reminder schedule invalid", "err", err)
			os.Exit(1)
		}
		sched.Start()
	} else {
		logger.Warn("reminder scanner disabled")
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Appointments: st.appointments,
		Catalog:      st.catalog,
		DB:           st.db,
		Audit:        auditDispatcher,
		Metrics:      m,
		Gatherer:     reg,
		Log:          logger,
		Now:          now,
		CORSOrigins:  cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting",
			"addr", srv.Addr,
			"store", cfg.StoreDriver,
			"notifier", cfg.Notifier.Driver,
			"timezone", loc.String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			logger.Error("scheduler shutdown error", "err", err)
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
