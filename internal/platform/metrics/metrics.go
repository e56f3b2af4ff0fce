package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by use cases and middleware.
type Recorder interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
	MatchRequested(charged bool)
	MatchClaimed()
	MatchResultSubmitted()
	MatchesRequeued(n int)
}

var (
	_ Recorder = (*Service)(nil)
	_ Recorder = Nop{}
)

type Service struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	MatchesRequested    prometheus.Counter
	CreditsDeducted     prometheus.Counter
	MatchesClaimedTotal prometheus.Counter
	ResultsSubmitted    prometheus.Counter
	MatchesRequeuedCtr  prometheus.Counter
}

// NewService creates and registers the collectors. Without a registerer the
// Prometheus default registerer is used.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 && registerer[0] != nil {
		reg = registerer[0]
	}

	s := &Service{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scouting_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scouting_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		MatchesRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scouting_matches_requested_total",
			Help: "Match analysis requests accepted.",
		}),
		CreditsDeducted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scouting_credits_deducted_total",
			Help: "Credits charged for match analysis requests.",
		}),
		MatchesClaimedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scouting_matches_claimed_total",
			Help: "Pending matches handed to the analysis worker.",
		}),
		ResultsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scouting_match_results_submitted_total",
			Help: "Analysis results stored for matches.",
		}),
		MatchesRequeuedCtr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scouting_matches_requeued_total",
			Help: "Stale processing matches returned to pending.",
		}),
	}

	reg.MustRegister(
		s.HTTPRequests,
		s.HTTPDuration,
		s.MatchesRequested,
		s.CreditsDeducted,
		s.MatchesClaimedTotal,
		s.ResultsSubmitted,
		s.MatchesRequeuedCtr,
	)
	return s
}

// NewHandler exposes the given gatherer, or the default one.
func NewHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 && gatherer[0] != nil {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

func (s *Service) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	s.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	s.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (s *Service) MatchRequested(charged bool) {
	s.MatchesRequested.Inc()
	if charged {
		s.CreditsDeducted.Inc()
	}
}

func (s *Service) MatchClaimed() {
	s.MatchesClaimedTotal.Inc()
}

func (s *Service) MatchResultSubmitted() {
	s.ResultsSubmitted.Inc()
}

func (s *Service) MatchesRequeued(n int) {
	if n > 0 {
		s.MatchesRequeuedCtr.Add(float64(n))
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveHTTP(string, string, int, time.Duration) {}
func (Nop) MatchRequested(bool)                             {}
func (Nop) MatchClaimed()                                   {}
func (Nop) MatchResultSubmitted()                           {}
func (Nop) MatchesRequeued(int)                             {}
