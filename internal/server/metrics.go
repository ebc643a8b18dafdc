package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	views     prometheus.Counter
	approvals prometheus.Counter
	renders   *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		views: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "proposa",
			Name:      "views_total",
			Help:      "Public proposal views.",
		}),
		approvals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "proposa",
			Name:      "approvals_total",
			Help:      "Signed proposal approvals.",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proposa",
			Name:      "renders_total",
			Help:      "Rendered pages by view and outcome.",
		}, []string{"view", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "proposa",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering a page.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
	}
	for _, c := range []prometheus.Collector{m.views, m.approvals, m.renders, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observeRender(view string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.renders.WithLabelValues(view, outcome).Inc()
	m.latency.WithLabelValues(view).Observe(time.Since(start).Seconds())
}
