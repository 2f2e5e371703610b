package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

// AppointmentStore guarda agendamentos em memória, na ordem de criação.
// O mutex faz o papel do índice único do Postgres.
type AppointmentStore struct {
	mu     sync.Mutex
	items  []*models.Appointment
	byID   map[string]*models.Appointment
	active map[domain.SlotKey]string
}

func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{
		byID:   make(map[string]*models.Appointment),
		active: make(map[domain.SlotKey]string),
	}
}

func (s *AppointmentStore) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.KeyOf(ap)
	if domain.IsActive(ap) {
		if _, taken := s.active[key]; taken {
			return httperr.ErrBusiness(domain.CodeSlotConflict)
		}
	}

	now := time.Now()
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = now
	}
	ap.UpdatedAt = now

	stored := *ap
	s.items = append(s.items, &stored)
	s.byID[stored.ID] = &stored
	if domain.IsActive(&stored) {
		s.active[key] = stored.ID
	}
	return nil
}

func (s *AppointmentStore) FindActiveInSlot(_ context.Context, key domain.SlotKey) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.active[key]
	if !ok {
		return nil, nil
	}
	cp := *s.byID[id]
	return &cp, nil
}

func (s *AppointmentStore) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (s *AppointmentStore) UpdateStatus(
	_ context.Context,
	id string,
	status domain.Status,
	now time.Time,
) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	key := domain.KeyOf(ap)
	wasActive := domain.IsActive(ap)
	willBeActive := status != domain.StatusCancelled

	if !wasActive && willBeActive {
		if _, taken := s.active[key]; taken {
			return nil, httperr.ErrBusiness(domain.CodeSlotConflict)
		}
	}

	domain.ApplyStatus(ap, status, now)
	ap.UpdatedAt = now

	switch {
	case wasActive && !willBeActive:
		delete(s.active, key)
	case !wasActive && willBeActive:
		s.active[key] = ap.ID
	}

	cp := *ap
	return &cp, nil
}

func (s *AppointmentStore) MarkReminderSent(_ context.Context, id string, sentAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.byID[id]
	if !ok || ap.ReminderSent {
		return false, nil
	}
	ap.ReminderSent = true
	ap.ReminderSentAt = &sentAt
	ap.UpdatedAt = sentAt
	return true, nil
}

func (s *AppointmentStore) ListAppointments(_ context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	out := s.collect(func(ap *models.Appointment) bool {
		if filter.Client != "" && ap.Client != filter.Client {
			return false
		}
		if filter.ProID != 0 && ap.ProID != filter.ProID {
			return false
		}
		return true
	})
	sortByDateTime(out)
	return out, nil
}

func (s *AppointmentStore) ListActiveForDay(_ context.Context, date string, proID uint) ([]models.Appointment, error) {
	return s.collect(func(ap *models.Appointment) bool {
		return ap.Date == date && ap.ProID == proID && domain.IsActive(ap)
	}), nil
}

func (s *AppointmentStore) ListPendingForDates(_ context.Context, dates []string, limit int) ([]models.Appointment, error) {
	out := s.collect(func(ap *models.Appointment) bool {
		return ap.Status == string(domain.StatusPending) && !ap.ReminderSent && slices.Contains(dates, ap.Date)
	})
	sortByDateTime(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *AppointmentStore) collect(keep func(*models.Appointment) bool) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Appointment, 0, len(s.items))
	for _, ap := range s.items {
		if keep(ap) {
			out = append(out, *ap)
		}
	}
	return out
}

func sortByDateTime(apps []models.Appointment) {
	slices.SortStableFunc(apps, func(a, b models.Appointment) int {
		if a.Date != b.Date {
			if a.Date < b.Date {
				return -1
			}
			return 1
		}
		if a.Time < b.Time {
			return -1
		}
		if a.Time > b.Time {
			return 1
		}
		return 0
	})
}

var _ domain.Repository = (*AppointmentStore)(nil)
