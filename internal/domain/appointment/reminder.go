package appointment

import "time"

// ReminderWindow é o intervalo [Target−slack, Target+slack] de horários que
// recebem lembrete em uma varredura. Trabalha com instantes absolutos, então
// uma janela que cruza a meia-noite cobre as duas datas.
type ReminderWindow struct {
	Target time.Time
	Start  time.Time
	End    time.Time
}

func NewReminderWindow(now time.Time, lead, slack time.Duration) ReminderWindow {
	target := now.Add(lead).Truncate(time.Minute)
	return ReminderWindow{
		Target: target,
		Start:  target.Add(-slack),
		End:    target.Add(slack),
	}
}

// Contains inclui as duas bordas.
func (w ReminderWindow) Contains(at time.Time) bool {
	return !at.Before(w.Start) && !at.After(w.End)
}

// Dates lista as datas locais tocadas pela janela (uma ou duas).
func (w ReminderWindow) Dates() []string {
	first := w.Start.Format(DateLayout)
	last := w.End.Format(DateLayout)
	if first == last {
		return []string{first}
	}
	return []string{first, last}
}
