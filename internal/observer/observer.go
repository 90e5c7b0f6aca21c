package observer

import (
	"strconv"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
}

// Observer пишет события движка расписания в лог и prometheus.
// Метрики могут быть nil (метрики выключены в конфигурации).
type Observer struct {
	logger  Logger
	metrics *metrics.Metrics
}

func New(logger Logger, m *metrics.Metrics) *Observer {
	return &Observer{logger: logger, metrics: m}
}

var _ scheduling.Observer = (*Observer)(nil)

func (o *Observer) SlotsComputed(e scheduling.SlotsEvent) {
	o.logger.Debug("[Scheduling] slots computed: worker=%s date=%s duration=%d candidates=%d available=%d",
		e.WorkerID, e.DateKey, e.DurationMinutes, e.Candidates, e.Available)

	if o.metrics == nil {
		return
	}
	o.metrics.SlotsComputed.Inc()
	o.metrics.SlotsCandidates.Observe(float64(e.Candidates))
	o.metrics.SlotsAvailable.Observe(float64(e.Available))
}

func (o *Observer) ConflictFound(e scheduling.ConflictEvent) {
	o.logger.Info("[Scheduling] conflict: worker=%s date=%s booking=%s busy %s-%s",
		e.WorkerID, e.DateKey, e.BookingID, e.Start.Format(domain.TimeFormat), e.End.Format(domain.TimeFormat))

	if o.metrics == nil {
		return
	}
	o.metrics.ConflictsFound.Inc()
}

func (o *Observer) ChainValidated(e scheduling.ChainEvent) {
	o.logger.Info("[Scheduling] visit chain validated: services=%d workers=%d %s-%s",
		e.Services, e.Workers, e.StartAt.Format(domain.TimeFormat), e.EndAt.Format(domain.TimeFormat))

	if o.metrics == nil {
		return
	}
	o.metrics.ChainsValidated.WithLabelValues(strconv.Itoa(e.Workers)).Observe(float64(e.Services))
}
