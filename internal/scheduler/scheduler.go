package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Task é uma rotina periódica. O contexto é cancelado no Stop.
type Task func(ctx context.Context) error

// Scheduler roda tarefas em expressões cron no fuso da barbearia.
// Uma execução nunca se sobrepõe à anterior da mesma tarefa.
type Scheduler struct {
	cron   *cron.Cron
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(loc *time.Location, log *slog.Logger) *Scheduler {
	clog := cronLogger{log: log}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(clog),
			cron.WithChain(
				cron.Recover(clog),
				cron.SkipIfStillRunning(clog),
			),
		),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registra uma tarefa com expressão de 5 campos (min hora dia mês semana).
func (s *Scheduler) Add(name, spec string, task Task) error {
	_, err := s.cron.AddFunc(spec, func() {
		started := time.Now()
		if err := task(s.ctx); err != nil {
			s.log.Error("scheduled task failed",
				"task", name,
				"err", err,
				"duration", time.Since(started).String(),
			)
			return
		}
		s.log.Debug("scheduled task done", "task", name, "duration", time.Since(started).String())
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q for %s: %w", spec, name, err)
	}

	s.log.Info("task scheduled", "task", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", "tasks", len(s.cron.Entries()))
}

// Stop cancela as tarefas em andamento e espera elas terminarem
// ou o ctx expirar.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()

	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ======================================================
// cron.Logger sobre slog
// ======================================================

type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
