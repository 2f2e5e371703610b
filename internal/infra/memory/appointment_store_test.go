package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
)

func newAppointment(id, date, hm string, proID uint) *models.Appointment {
	return &models.Appointment{
		ID:        id,
		Client:    "Ana",
		ProID:     proID,
		ServiceID: 1,
		Date:      date,
		Time:      hm,
		Status:    string(domain.StatusPending),
	}
}

func TestAppointmentStore_RejectsSecondActiveInSlot(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore()

	require.NoError(t, s.CreateAppointment(ctx, newAppointment("a", "2024-06-01", "10:00", 1)))

	err := s.CreateAppointment(ctx, newAppointment("b", "2024-06-01", "10:00", 1))
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotConflict))

	// outro profissional no mesmo horário é livre
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("c", "2024-06-01", "10:00", 2)))
}

func TestAppointmentStore_CancelFreesSlot(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateAppointment(ctx, newAppointment("a", "2024-06-01", "10:00", 1)))

	ap, err := s.UpdateStatus(ctx, "a", domain.StatusCancelled, now)
	require.NoError(t, err)
	require.NotNil(t, ap.CancelledAt)

	require.NoError(t, s.CreateAppointment(ctx, newAppointment("b", "2024-06-01", "10:00", 1)))

	// reativar o cancelado colidiria com "b"
	_, err = s.UpdateStatus(ctx, "a", domain.StatusPending, now)
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotConflict))

	got, err := s.GetAppointment(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
}

func TestAppointmentStore_UpdateStatusNotFound(t *testing.T) {
	_, err := NewAppointmentStore().UpdateStatus(context.Background(), "nope", domain.StatusCompleted, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppointmentStore_MarkReminderSentOnlyOnce(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore()
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("a", "2024-06-01", "10:00", 1)))

	at := time.Date(2024, 6, 1, 9, 50, 0, 0, time.UTC)

	ok, err := s.MarkReminderSent(ctx, "a", at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.MarkReminderSent(ctx, "a", at.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.GetAppointment(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.ReminderSent)
	require.NotNil(t, got.ReminderSentAt)
	assert.True(t, got.ReminderSentAt.Equal(at))
}

func TestAppointmentStore_ListPendingForDates(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore()

	require.NoError(t, s.CreateAppointment(ctx, newAppointment("late", "2024-06-01", "17:00", 1)))
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("early", "2024-06-01", "09:00", 1)))
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("next", "2024-06-02", "00:00", 1)))
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("other", "2024-06-03", "09:00", 1)))
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("done", "2024-06-01", "11:00", 1)))
	_, err := s.UpdateStatus(ctx, "done", domain.StatusCompleted, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("sent", "2024-06-01", "08:00", 1)))
	ok, err := s.MarkReminderSent(ctx, "sent", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	apps, err := s.ListPendingForDates(ctx, []string{"2024-06-01", "2024-06-02"}, 500)
	require.NoError(t, err)

	var ids []string
	for _, ap := range apps {
		ids = append(ids, ap.ID)
	}
	assert.Equal(t, []string{"early", "late", "next"}, ids)

	// O limite conta só linhas sem lembrete; "sent" seria a primeira da ordem.
	limited, err := s.ListPendingForDates(ctx, []string{"2024-06-01", "2024-06-02"}, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "early", limited[0].ID)
	assert.Equal(t, "late", limited[1].ID)
}

func TestAppointmentStore_ListActiveForDayKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore()

	require.NoError(t, s.CreateAppointment(ctx, newAppointment("a", "2024-06-01", "15:00", 1)))
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("b", "2024-06-01", "09:30", 1)))
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("c", "2024-06-01", "11:00", 2)))

	apps, err := s.ListActiveForDay(ctx, "2024-06-01", 1)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "15:00", apps[0].Time)
	assert.Equal(t, "09:30", apps[1].Time)
}
