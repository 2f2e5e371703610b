package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resultados possíveis de um item da varredura de lembretes
const (
	OutcomeSent         = "sent"
	OutcomeFailed       = "dispatch_failed"
	OutcomeNoEmail      = "no_email"
	OutcomeLookupMiss   = "lookup_miss"
	OutcomeAlreadySent  = "already_sent"
	OutcomeLostRace     = "lost_race"
	OutcomeMarkFailed   = "mark_failed"
	OutcomeOutOfWindow  = "out_of_window"
	OutcomeInvalidTime  = "invalid_time"
	OutcomeItemPanicked = "panicked"
)

type Metrics struct {
	BookingsCreated   prometheus.Counter
	BookingConflicts  prometheus.Counter
	StatusChanges     *prometheus.CounterVec
	ReminderOutcomes  *prometheus.CounterVec
	ReminderTicks     *prometheus.CounterVec
	ReminderTickTime  prometheus.Histogram
	DispatchDurations prometheus.Histogram
	HTTPRequests      *prometheus.CounterVec
}

func New(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		BookingsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Appointments created through the booking API.",
		}),
		BookingConflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts rejected because the slot was taken.",
		}),
		StatusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_status_changes_total",
			Help:      "Appointment status updates by new status.",
		}, []string{"status"}),
		ReminderOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_items_total",
			Help:      "Reminder scan candidates by outcome.",
		}, []string{"outcome"}),
		ReminderTicks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_ticks_total",
			Help:      "Reminder scan ticks by result.",
		}, []string{"result"}),
		ReminderTickTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reminder_tick_duration_seconds",
			Help:      "Wall time of one reminder scan tick.",
			Buckets:   prometheus.DefBuckets,
		}),
		DispatchDurations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reminder_dispatch_duration_seconds",
			Help:      "Latency of notification dispatch calls.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
	}
}
