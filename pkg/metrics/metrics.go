package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "salon"

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec
	DBTransactions  *prometheus.CounterVec

	// Движок расписания
	SlotsComputed   prometheus.Counter
	SlotsCandidates prometheus.Histogram
	SlotsAvailable  prometheus.Histogram
	ConflictsFound  prometheus.Counter
	ChainsValidated *prometheus.HistogramVec

	// Бронирования
	BookingsCreated   *prometheus.CounterVec
	BookingsCancelled prometheus.Counter
	DayLockContention prometheus.Counter
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: labels,
		}, []string{"operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "connections",
			Help:        "Database connection pool state.",
			ConstLabels: labels,
		}, []string{"state"}),
		DBTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "transactions_total",
			Help:        "Database transactions by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),

		SlotsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "scheduling",
			Name:        "slot_lists_total",
			Help:        "Number of computed slot lists.",
			ConstLabels: labels,
		}),
		SlotsCandidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "scheduling",
			Name:        "slot_candidates",
			Help:        "Candidate starts generated per slot list.",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(0, 8, 12),
		}),
		SlotsAvailable: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "scheduling",
			Name:        "slots_available",
			Help:        "Available starts left after conflict filtering.",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(0, 8, 12),
		}),
		ConflictsFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "scheduling",
			Name:        "conflicts_total",
			Help:        "Overlaps with existing bookings detected by the engine.",
			ConstLabels: labels,
		}),
		ChainsValidated: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "scheduling",
			Name:        "chain_services",
			Help:        "Number of services in validated visit chains.",
			ConstLabels: labels,
			Buckets:     []float64{1, 2, 3, 4, 5, 7, 10},
		}, []string{"workers"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "bookings",
			Name:        "created_total",
			Help:        "Created bookings by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
		BookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "bookings",
			Name:        "cancelled_total",
			Help:        "Cancelled bookings.",
			ConstLabels: labels,
		}),
		DayLockContention: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "bookings",
			Name:        "day_lock_contention_total",
			Help:        "Attempts rejected because the worker day was locked.",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBConnections,
		m.DBTransactions,
		m.SlotsComputed,
		m.SlotsCandidates,
		m.SlotsAvailable,
		m.ConflictsFound,
		m.ChainsValidated,
		m.BookingsCreated,
		m.BookingsCancelled,
		m.DayLockContention,
	)

	return m
}
