package appointment

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Expediente fixo da barbearia: 09:00 até o último início às 17:30.
const (
	OpeningMinute  = 9 * 60
	LastSlotMinute = 17*60 + 30
	SlotStep       = 30
)

// SlotGrid devolve todos os horários de início do dia, em ordem.
func SlotGrid() []string {
	grid := make([]string, 0, (LastSlotMinute-OpeningMinute)/SlotStep+1)
	for m := OpeningMinute; m <= LastSlotMinute; m += SlotStep {
		grid = append(grid, FormatMinuteOfDay(m))
	}
	return grid
}

// FreeSlots = grade − ocupados, preservando a ordem da grade.
func FreeSlots(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	grid := SlotGrid()
	free := make([]string, 0, len(grid))
	for _, slot := range grid {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free
}

// OnGrid indica se hm (HH:MM) é um horário de início reservável.
func OnGrid(hm string) bool {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return false
	}
	m := t.Hour()*60 + t.Minute()
	return m >= OpeningMinute && m <= LastSlotMinute && (m-OpeningMinute)%SlotStep == 0
}

func FormatMinuteOfDay(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// NormalizeTime aceita "9:00" ou "09:00" e devolve sempre HH:MM.
func NormalizeTime(raw string) (string, error) {
	t, err := time.Parse(TimeLayout, raw)
	if err != nil {
		return "", err
	}
	return t.Format(TimeLayout), nil
}

func NormalizeDate(raw string) (string, error) {
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}

// StartsAt combina data e hora do agendamento no fuso da barbearia.
func StartsAt(date, hm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hm, loc)
}
