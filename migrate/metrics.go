package migrate

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts what a run did.  A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Requests tracks ReadMe API calls by response code and method
	Requests *prometheus.CounterVec

	// Pages tracks mapping outcomes by command ("migrate", "create") and action
	Pages *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "readme_migrate_api_requests_total",
				Help: "Total number of ReadMe API requests",
			},
			[]string{"code", "method"},
		),
		Pages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "readme_migrate_pages_total",
				Help: "Total number of mapping entries handled, by outcome",
			},
			[]string{"command", "action"},
		),
	}
}

// InstrumentClient returns a copy of client whose requests are counted.
func (m *Metrics) InstrumentClient(client *http.Client) *http.Client {
	if m == nil {
		return client
	}

	next := client.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	instrumented := *client
	instrumented.Transport = promhttp.InstrumentRoundTripperCounter(m.Requests, next)
	return &instrumented
}

func (m *Metrics) observe(command string, action Action) {
	if m == nil {
		return
	}
	m.Pages.WithLabelValues(command, string(action)).Inc()
}
