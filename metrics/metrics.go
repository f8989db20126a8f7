package metrics

import (
	"net/http"

	"cardRevealServer/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exports engine activity to Prometheus. It implements game.Observer.
type Recorder struct {
	gatherer prometheus.Gatherer

	RoundsStarted    *prometheus.CounterVec
	RoundsCompleted  prometheus.Counter
	BetTotal         prometheus.Counter
	PayoutTotal      prometheus.Counter
	RoundMultiplier  prometheus.Histogram
	CardOutcomes     *prometheus.CounterVec
	IgnoredActions   *prometheus.CounterVec
	ConnectedClients prometheus.Gauge
	FlipAckTimeouts  prometheus.Counter
}

// NewRecorder registers the metrics on reg. Pass prometheus.NewRegistry()
// in tests to keep them isolated.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		gatherer: reg,
		RoundsStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameRoundsStarted,
				Help: HelpTextRoundsStarted,
			},
			[]string{LabelSpeed},
		),
		RoundsCompleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: MetricNameRoundsCompleted,
				Help: HelpTextRoundsCompleted,
			},
		),
		BetTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: MetricNameBetTotal,
				Help: HelpTextBetTotal,
			},
		),
		PayoutTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: MetricNamePayoutTotal,
				Help: HelpTextPayoutTotal,
			},
		),
		RoundMultiplier: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricNameRoundMultiplier,
				Help:    HelpTextRoundMultiplier,
				Buckets: MultiplierBuckets,
			},
		),
		CardOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameCardOutcomes,
				Help: HelpTextCardOutcomes,
			},
			[]string{LabelValue},
		),
		IgnoredActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameIgnoredActions,
				Help: HelpTextIgnoredActions,
			},
			[]string{LabelAction, LabelState},
		),
		ConnectedClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricNameConnectedClients,
				Help: HelpTextConnectedClients,
			},
		),
		FlipAckTimeouts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: MetricNameFlipAckTimeouts,
				Help: HelpTextFlipAckTimeouts,
			},
		),
	}
}

func (r *Recorder) RoundStarted(rc game.RoundContext) {
	r.RoundsStarted.WithLabelValues(rc.Speed.String()).Inc()
	for _, o := range rc.Outcomes {
		r.CardOutcomes.WithLabelValues(o.Label()).Inc()
	}
}

func (r *Recorder) RoundCompleted(res game.RoundResult) {
	r.RoundsCompleted.Inc()
	r.BetTotal.Add(res.Bet)
	r.PayoutTotal.Add(res.Payout.InexactFloat64())
	r.RoundMultiplier.Observe(res.TotalMultiplier.InexactFloat64())
}

func (r *Recorder) ActionIgnored(action game.Action, state game.RoundState) {
	r.IgnoredActions.WithLabelValues(string(action), state.String()).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
