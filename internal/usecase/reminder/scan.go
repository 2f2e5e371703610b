package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/metrics"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
	"github.com/BruksfildServices01/agendai-scheduler/internal/notification"
)

// ErrTickBusy indica que outra varredura ainda segura o lock.
var ErrTickBusy = errors.New("reminder scan already running")

// TickLock garante uma varredura por vez (processo ou cluster).
type TickLock interface {
	TryLock(ctx context.Context) (unlock func(), ok bool, err error)
}

type Config struct {
	Lead            time.Duration
	Window          time.Duration
	Limit           int
	DispatchTimeout time.Duration
	Concurrency     int
	Location        *time.Location
}

// Result resume uma varredura.
type Result struct {
	Candidates int
	Sent       int
	Failed     int
	Skipped    int
}

// ======================================================
// SCANNER
// ======================================================

type Scanner struct {
	appointments domain.Repository
	catalog      catalog.Repository
	notifier     notification.Dispatcher
	lock         TickLock
	metrics      *metrics.Metrics
	log          *slog.Logger
	cfg          Config
	now          func() time.Time
}

func NewScanner(
	appointments domain.Repository,
	catalog catalog.Repository,
	notifier notification.Dispatcher,
	lock TickLock,
	metrics *metrics.Metrics,
	log *slog.Logger,
	cfg Config,
	now func() time.Time,
) *Scanner {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Scanner{
		appointments: appointments,
		catalog:      catalog,
		notifier:     notifier,
		lock:         lock,
		metrics:      metrics,
		log:          log,
		cfg:          cfg,
		now:          now,
	}
}

// Run executa uma varredura. Erros por item são registrados e não
// interrompem as demais; só falhas de lock ou de consulta voltam como erro.
func (s *Scanner) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	defer func() {
		s.metrics.ReminderTickTime.Observe(time.Since(started).Seconds())
	}()

	unlock, ok, err := s.lock.TryLock(ctx)
	if err != nil {
		s.metrics.ReminderTicks.WithLabelValues("lock_error").Inc()
		s.log.Error("reminder scan lock failed", "err", err)
		return Result{}, fmt.Errorf("acquire reminder lock: %w", err)
	}
	if !ok {
		s.metrics.ReminderTicks.WithLabelValues("busy").Inc()
		s.log.Warn("reminder scan skipped, previous tick still running")
		return Result{}, ErrTickBusy
	}
	defer unlock()

	now := s.now().In(s.cfg.Location)
	window := domain.NewReminderWindow(now, s.cfg.Lead, s.cfg.Window)

	s.log.Info("checking appointment reminders",
		"now", now.Format(time.RFC3339),
		"window_start", window.Start.Format(time.RFC3339),
		"window_end", window.End.Format(time.RFC3339),
	)

	candidates, err := s.appointments.ListPendingForDates(ctx, window.Dates(), s.cfg.Limit)
	if err != nil {
		s.metrics.ReminderTicks.WithLabelValues("store_error").Inc()
		s.log.Error("reminder scan aborted", "err", err)
		return Result{}, fmt.Errorf("list reminder candidates: %w", err)
	}
	if s.cfg.Limit > 0 && len(candidates) >= s.cfg.Limit {
		s.log.Warn("reminder scan hit candidate limit", "limit", s.cfg.Limit)
	}

	outcomes := make([]string, len(candidates))

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Concurrency)
	for i, ap := range candidates {
		i, ap := i, ap
		g.Go(func() error {
			outcomes[i] = s.process(ctx, window, now, ap)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Candidates: len(candidates)}
	for _, outcome := range outcomes {
		s.metrics.ReminderOutcomes.WithLabelValues(outcome).Inc()

		switch outcome {
		case metrics.OutcomeSent:
			res.Sent++
		case metrics.OutcomeFailed, metrics.OutcomeMarkFailed, metrics.OutcomeItemPanicked:
			res.Failed++
		default:
			res.Skipped++
		}
	}

	s.metrics.ReminderTicks.WithLabelValues("ok").Inc()
	s.log.Info("reminder scan finished",
		"candidates", res.Candidates,
		"sent", res.Sent,
		"failed", res.Failed,
		"skipped", res.Skipped,
	)
	return res, nil
}

// process decide e executa o lembrete de um agendamento.
func (s *Scanner) process(
	ctx context.Context,
	window domain.ReminderWindow,
	now time.Time,
	ap models.Appointment,
) (outcome string) {

	log := s.log.With("appointment_id", ap.ID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("reminder item panicked", "panic", r)
			outcome = metrics.OutcomeItemPanicked
		}
	}()

	// --------------------------------------------------
	// 1️⃣ Janela
	// --------------------------------------------------
	startsAt, err := domain.StartsAt(ap.Date, ap.Time, s.cfg.Location)
	if err != nil {
		log.Warn("appointment has unparseable date/time", "date", ap.Date, "time", ap.Time)
		return metrics.OutcomeInvalidTime
	}
	if !window.Contains(startsAt) {
		return metrics.OutcomeOutOfWindow
	}

	// --------------------------------------------------
	// 2️⃣ Já enviado / sem destino
	// --------------------------------------------------
	if ap.ReminderSent {
		return metrics.OutcomeAlreadySent
	}
	if ap.ClientEmail == "" {
		log.Warn("appointment has no email")
		return metrics.OutcomeNoEmail
	}

	// --------------------------------------------------
	// 3️⃣ Serviço e profissional
	// --------------------------------------------------
	service, err := s.catalog.GetService(ctx, ap.ServiceID)
	if err != nil {
		log.Warn("service lookup failed for reminder", "service_id", ap.ServiceID, "err", err)
		return metrics.OutcomeLookupMiss
	}
	pro, err := s.catalog.GetProfessional(ctx, ap.ProID)
	if err != nil {
		log.Warn("professional lookup failed for reminder", "pro_id", ap.ProID, "err", err)
		return metrics.OutcomeLookupMiss
	}

	// --------------------------------------------------
	// 4️⃣ Envio (falha = nova tentativa no próximo tick)
	// --------------------------------------------------
	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.DispatchTimeout)
	defer cancel()

	sendStarted := time.Now()
	err = s.notifier.Send(sendCtx, notification.Reminder{
		To:          ap.ClientEmail,
		ClientName:  ap.Client,
		Date:        ap.Date,
		Time:        ap.Time,
		ServiceName: service.Name,
		ProName:     pro.Name,
		LeadMinutes: int(s.cfg.Lead / time.Minute),
	})
	s.metrics.DispatchDurations.Observe(time.Since(sendStarted).Seconds())

	if err != nil {
		log.Error("failed to send reminder", "err", err)
		return metrics.OutcomeFailed
	}

	// --------------------------------------------------
	// 5️⃣ Marca como enviado (condicional)
	// --------------------------------------------------
	marked, err := s.appointments.MarkReminderSent(ctx, ap.ID, now)
	if err != nil {
		log.Error("reminder sent but flag not persisted", "err", err)
		return metrics.OutcomeMarkFailed
	}
	if !marked {
		log.Warn("reminder flag already set by another tick")
		return metrics.OutcomeLostRace
	}

	log.Info("reminder sent", "to", ap.ClientEmail)
	return metrics.OutcomeSent
}
