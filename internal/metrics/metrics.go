package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Production Metrics
var (
	CraftsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsStarted,
			Help: HelpTextCraftsStarted,
		},
		[]string{LabelStation},
	)

	CraftsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsCompleted,
			Help: HelpTextCraftsCompleted,
		},
		[]string{LabelStation},
	)

	CraftsCancelled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsCancelled,
			Help: HelpTextCraftsCancelled,
		},
		[]string{LabelStation},
	)

	CraftsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsRejected,
			Help: HelpTextCraftsRejected,
		},
		[]string{LabelReason},
	)

	UnitsProduced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnitsProduced,
			Help: HelpTextUnitsProduced,
		},
		[]string{LabelKind, LabelQuality},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameQueueDepth,
			Help: HelpTextQueueDepth,
		},
	)

	MasteryLevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMasteryLevelUps,
			Help: HelpTextMasteryLevelUps,
		},
		[]string{LabelStation},
	)

	StationUpgrades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStationUpgrades,
			Help: HelpTextStationUpgrades,
		},
		[]string{LabelStation},
	)
)
