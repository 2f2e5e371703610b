package notification

import (
	"context"
	"log/slog"
)

// Reminder é o conteúdo de um lembrete de agendamento.
type Reminder struct {
	To          string
	ClientName  string
	Date        string
	Time        string
	ServiceName string
	ProName     string
	LeadMinutes int
}

// Dispatcher envia o lembrete. Um erro significa "não entregue": quem
// chama decide se tenta de novo.
type Dispatcher interface {
	Send(ctx context.Context, r Reminder) error
}

// LogDispatcher só registra o envio; usado em desenvolvimento.
type LogDispatcher struct {
	log *slog.Logger
}

func NewLogDispatcher(log *slog.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Send(ctx context.Context, r Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, _, err := Render(r)
	if err != nil {
		return err
	}

	d.log.InfoContext(ctx, "reminder email (log only)",
		"to", r.To,
		"subject", subject,
		"date", r.Date,
		"time", r.Time,
	)
	return nil
}
