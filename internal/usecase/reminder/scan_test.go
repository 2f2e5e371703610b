package reminder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/agendai-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/agendai-scheduler/internal/metrics"
	"github.com/BruksfildServices01/agendai-scheduler/internal/models"
	"github.com/BruksfildServices01/agendai-scheduler/internal/notification"
)

var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return loc
}()

// ------------------------------------------------------
// FAKES
// ------------------------------------------------------

type fakeNotifier struct {
	mu       sync.Mutex
	sent     []notification.Reminder
	fail     atomic.Bool
	delay    time.Duration
	panicFor string
}

func (n *fakeNotifier) Send(ctx context.Context, r notification.Reminder) error {
	if n.panicFor != "" && r.To == n.panicFor {
		panic("boom")
	}
	if n.delay > 0 {
		select {
		case <-time.After(n.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if n.fail.Load() {
		return errors.New("smtp unavailable")
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, r)
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type busyLock struct{}

func (busyLock) TryLock(context.Context) (func(), bool, error) { return nil, false, nil }

type failingLock struct{}

func (failingLock) TryLock(context.Context) (func(), bool, error) {
	return nil, false, errors.New("redis down")
}

type brokenStore struct {
	*memory.AppointmentStore
}

func (brokenStore) ListPendingForDates(context.Context, []string, int) ([]models.Appointment, error) {
	return nil, errors.New("connection reset")
}

// staleStore devolve uma listagem fixa, como uma réplica atrasada.
type staleStore struct {
	*memory.AppointmentStore
	rows []models.Appointment
}

func (s staleStore) ListPendingForDates(context.Context, []string, int) ([]models.Appointment, error) {
	return s.rows, nil
}

// ------------------------------------------------------
// FIXTURE
// ------------------------------------------------------

type fixture struct {
	store    *memory.AppointmentStore
	catalog  *memory.CatalogStore
	notifier *fakeNotifier
	metrics  *metrics.Metrics
	cfg      Config
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	return &fixture{
		store:    memory.NewAppointmentStore(),
		catalog:  memory.NewCatalogStore(catalog.DefaultServices(), catalog.DefaultProfessionals()),
		notifier: &fakeNotifier{},
		metrics:  metrics.New(prometheus.NewRegistry(), "test"),
		cfg: Config{
			Lead:            10 * time.Minute,
			Window:          5 * time.Minute,
			Limit:           100,
			DispatchTimeout: time.Second,
			Concurrency:     4,
			Location:        saoPaulo,
		},
		now: time.Date(2024, 6, 1, 14, 19, 30, 0, saoPaulo),
	}
}

func (f *fixture) scanner(repo domain.Repository, tick TickLock) *Scanner {
	if repo == nil {
		repo = f.store
	}
	if tick == nil {
		tick = &lock.LocalLock{}
	}
	return NewScanner(
		repo,
		f.catalog,
		f.notifier,
		tick,
		f.metrics,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		f.cfg,
		func() time.Time { return f.now },
	)
}

func (f *fixture) book(t *testing.T, id, date, hm, email string) {
	t.Helper()
	require.NoError(t, f.store.CreateAppointment(context.Background(), &models.Appointment{
		ID:          id,
		Client:      "Cliente " + id,
		ClientEmail: email,
		ProID:       1,
		ServiceID:   1,
		Date:        date,
		Time:        hm,
		Status:      string(domain.StatusPending),
	}))
}

func (f *fixture) reminded(t *testing.T, id string) bool {
	t.Helper()
	ap, err := f.store.GetAppointment(context.Background(), id)
	require.NoError(t, err)
	return ap.ReminderSent
}

func (f *fixture) outcome(name string) float64 {
	return testutil.ToFloat64(f.metrics.ReminderOutcomes.WithLabelValues(name))
}

// ------------------------------------------------------
// TESTS
// ------------------------------------------------------

func TestScanner_SendsDueReminderOnce(t *testing.T) {
	f := newFixture(t)
	f.book(t, "a1", "2024-06-01", "14:30", "pedro@example.com")

	res, err := f.scanner(nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Candidates: 1, Sent: 1}, res)
	assert.True(t, f.reminded(t, "a1"))

	require.Len(t, f.notifier.sent, 1)
	r := f.notifier.sent[0]
	assert.Equal(t, "pedro@example.com", r.To)
	assert.Equal(t, "Corte Masculino", r.ServiceName)
	assert.Equal(t, "João", r.ProName)
	assert.Equal(t, 10, r.LeadMinutes)

	ap, _ := f.store.GetAppointment(context.Background(), "a1")
	require.NotNil(t, ap.ReminderSentAt)
	assert.True(t, ap.ReminderSentAt.Equal(f.now))

	// segundo tick na mesma janela nem lista o agendamento
	res, err = f.scanner(nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Equal(t, 1, f.notifier.count())
}

func TestScanner_SkipsRowAlreadyMarkedInStaleListing(t *testing.T) {
	f := newFixture(t)
	f.book(t, "a1", "2024-06-01", "14:30", "pedro@example.com")

	ok, err := f.store.MarkReminderSent(context.Background(), "a1", f.now)
	require.NoError(t, err)
	require.True(t, ok)
	ap, err := f.store.GetAppointment(context.Background(), "a1")
	require.NoError(t, err)

	res, err := f.scanner(staleStore{f.store, []models.Appointment{*ap}}, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Candidates)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 0, f.notifier.count())
	assert.Equal(t, float64(1), f.outcome(metrics.OutcomeAlreadySent))
}

func TestScanner_RetriesAfterDispatchFailure(t *testing.T) {
	f := newFixture(t)
	f.book(t, "a1", "2024-06-01", "14:30", "pedro@example.com")

	f.notifier.fail.Store(true)
	res, err := f.scanner(nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.False(t, f.reminded(t, "a1"))

	f.notifier.fail.Store(false)
	f.now = f.now.Add(time.Minute)
	res, err = f.scanner(nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.True(t, f.reminded(t, "a1"))
}

func TestScanner_SkipsInactiveAndOutOfWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, "cancelled", "2024-06-01", "14:30", "a@example.com")
	f.book(t, "completed", "2024-06-01", "14:24", "b@example.com")
	f.book(t, "later", "2024-06-01", "15:00", "c@example.com")
	f.book(t, "earlier", "2024-06-01", "14:00", "d@example.com")

	_, err := f.store.UpdateStatus(ctx, "cancelled", domain.StatusCancelled, f.now)
	require.NoError(t, err)
	_, err = f.store.UpdateStatus(ctx, "completed", domain.StatusCompleted, f.now)
	require.NoError(t, err)

	res, err := f.scanner(nil, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Candidates)
	assert.Equal(t, 2, res.Skipped)
	assert.Zero(t, f.notifier.count())
	assert.Equal(t, float64(2), f.outcome(metrics.OutcomeOutOfWindow))
}

func TestScanner_WindowEdgesAreInclusive(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2024, 6, 1, 14, 20, 0, 0, saoPaulo)

	f.book(t, "start", "2024-06-01", "14:25", "a@example.com")
	f.book(t, "end", "2024-06-01", "14:35", "b@example.com")
	f.book(t, "past", "2024-06-01", "14:36", "c@example.com")

	res, err := f.scanner(nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)
	assert.True(t, f.reminded(t, "start"))
	assert.True(t, f.reminded(t, "end"))
	assert.False(t, f.reminded(t, "past"))
}

func TestScanner_MissingEmailAndCatalogEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, "no-email", "2024-06-01", "14:30", "")
	require.NoError(t, f.store.CreateAppointment(ctx, &models.Appointment{
		ID:          "ghost-service",
		Client:      "Ana",
		ClientEmail: "ana@example.com",
		ProID:       2,
		ServiceID:   99,
		Date:        "2024-06-01",
		Time:        "14:29",
		Status:      string(domain.StatusPending),
	}))

	res, err := f.scanner(nil, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Skipped)
	assert.Zero(t, f.notifier.count())
	assert.False(t, f.reminded(t, "no-email"))
	assert.False(t, f.reminded(t, "ghost-service"))
	assert.Equal(t, float64(1), f.outcome(metrics.OutcomeNoEmail))
	assert.Equal(t, float64(1), f.outcome(metrics.OutcomeLookupMiss))
}

func TestScanner_CrossesMidnight(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2024, 6, 1, 23, 53, 0, 0, saoPaulo)

	f.book(t, "late", "2024-06-01", "23:58", "a@example.com")
	f.book(t, "tomorrow", "2024-06-02", "00:05", "b@example.com")
	f.book(t, "morning", "2024-06-01", "00:05", "c@example.com")

	res, err := f.scanner(nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)
	assert.True(t, f.reminded(t, "late"))
	assert.True(t, f.reminded(t, "tomorrow"))
	assert.False(t, f.reminded(t, "morning"))
}

func TestScanner_SlowDispatchTimesOut(t *testing.T) {
	f := newFixture(t)
	f.cfg.DispatchTimeout = 20 * time.Millisecond
	f.notifier.delay = time.Second
	f.book(t, "a1", "2024-06-01", "14:30", "pedro@example.com")

	started := time.Now()
	res, err := f.scanner(nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 500*time.Millisecond)
	assert.Equal(t, 1, res.Failed)
	assert.False(t, f.reminded(t, "a1"))
}

func TestScanner_PanicInOneItemDoesNotStopOthers(t *testing.T) {
	f := newFixture(t)
	f.notifier.panicFor = "bad@example.com"
	f.book(t, "bad", "2024-06-01", "14:29", "bad@example.com")
	f.book(t, "good", "2024-06-01", "14:30", "good@example.com")

	res, err := f.scanner(nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.Failed)
	assert.True(t, f.reminded(t, "good"))
	assert.Equal(t, float64(1), f.outcome(metrics.OutcomeItemPanicked))
}

func TestScanner_RespectsCandidateLimit(t *testing.T) {
	f := newFixture(t)
	f.cfg.Limit = 2
	ctx := context.Background()

	for i, hm := range []string{"14:26", "14:28", "14:30"} {
		require.NoError(t, f.store.CreateAppointment(ctx, &models.Appointment{
			ID:          hm,
			Client:      "Cliente",
			ClientEmail: "c@example.com",
			ProID:       uint(i%2 + 1),
			ServiceID:   1,
			Date:        "2024-06-01",
			Time:        hm,
			Status:      string(domain.StatusPending),
		}))
	}

	res, err := f.scanner(nil, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Candidates)
	assert.False(t, f.reminded(t, "14:30"))
}

func TestScanner_StoreErrorEndsTick(t *testing.T) {
	f := newFixture(t)

	_, err := f.scanner(brokenStore{f.store}, nil).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ReminderTicks.WithLabelValues("store_error")))
}

func TestScanner_BusyLockSkipsTick(t *testing.T) {
	f := newFixture(t)
	f.book(t, "a1", "2024-06-01", "14:30", "pedro@example.com")

	_, err := f.scanner(nil, busyLock{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrTickBusy)
	assert.Zero(t, f.notifier.count())

	_, err = f.scanner(nil, failingLock{}).Run(context.Background())
	assert.Error(t, err)
	assert.False(t, f.reminded(t, "a1"))
}

func TestScanner_LocalLockReleasedAfterTick(t *testing.T) {
	f := newFixture(t)
	tick := &lock.LocalLock{}
	s := f.scanner(nil, tick)

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	unlock, ok, err := tick.TryLock(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	unlock()
}
