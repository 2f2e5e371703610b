package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var reminderTmpl = template.Must(template.New("reminder").Parse(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; border-radius: 5px;">
      <div style="background-color: #3b82f6; color: white; padding: 20px; border-radius: 5px 5px 0 0; text-align: center;">
        <h2>⏰ Lembrete de Agendamento - AgendAI</h2>
      </div>
      <div style="background-color: white; padding: 20px;">
        <p>Olá {{.ClientName}},</p>
        <p><strong>Seu agendamento está chegando em {{.LeadMinutes}} minutos!</strong></p>
        <div style="background-color: #f0f0f0; padding: 15px; border-left: 4px solid #3b82f6; margin: 15px 0;">
          <div><b>Serviço:</b> {{.ServiceName}}</div>
          <div><b>Data:</b> {{.Date}}</div>
          <div><b>Horário:</b> {{.Time}}</div>
          <div><b>Profissional:</b> {{.ProName}}</div>
        </div>
        <p style="margin-top: 20px; color: #666; font-size: 14px;">
          Por favor, chegue alguns minutos mais cedo. Estamos te esperando!
        </p>
      </div>
      <div style="padding: 15px; text-align: center; font-size: 12px; color: #888;">
        <p>Este é um lembrete automático de agendamento.</p>
        <p>AgendAI - Barbearia</p>
      </div>
    </div>
  </body>
</html>
`))

// Render monta assunto e corpo HTML. A data sai em dd/mm/aaaa quando possível.
func Render(r Reminder) (subject string, body string, err error) {
	view := r
	if d, perr := time.Parse("2006-01-02", r.Date); perr == nil {
		view.Date = d.Format("02/01/2006")
	}

	var buf bytes.Buffer
	if err := reminderTmpl.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("render reminder: %w", err)
	}

	subject = fmt.Sprintf("⏰ Lembrete: Seu agendamento em %d minutos - AgendAI", r.LeadMinutes)
	return subject, buf.String(), nil
}
