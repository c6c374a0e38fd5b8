package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "foxrunner_http_requests_total"
	MetricNameHTTPRequestDuration  = "foxrunner_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "foxrunner_http_requests_in_flight"

	MetricNameEventsPublished    = "foxrunner_events_published_total"
	MetricNameEventHandlerErrors = "foxrunner_event_handler_errors_total"

	MetricNameCraftsStarted   = "foxrunner_crafts_started_total"
	MetricNameCraftsCompleted = "foxrunner_crafts_completed_total"
	MetricNameCraftsCancelled = "foxrunner_crafts_cancelled_total"
	MetricNameCraftsRejected  = "foxrunner_crafts_rejected_total"
	MetricNameUnitsProduced   = "foxrunner_units_produced_total"
	MetricNameQueueDepth      = "foxrunner_queue_depth"
	MetricNameMasteryLevelUps = "foxrunner_mastery_levelups_total"
	MetricNameStationUpgrades = "foxrunner_station_upgrades_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextEventsPublished    = "Total number of events published on the bus"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextCraftsStarted   = "Total number of crafting jobs accepted into the queue"
	HelpTextCraftsCompleted = "Total number of crafting jobs resolved"
	HelpTextCraftsCancelled = "Total number of crafting jobs cancelled"
	HelpTextCraftsRejected  = "Total number of rejected craft requests by reason"
	HelpTextUnitsProduced   = "Total number of produced units by result kind and quality"
	HelpTextQueueDepth      = "Current number of jobs in the production queue"
	HelpTextMasteryLevelUps = "Total number of mastery level-ups by station"
	HelpTextStationUpgrades = "Total number of station level upgrades by station"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelStation = "station"
	LabelReason  = "reason"
	LabelKind    = "kind"
	LabelQuality = "quality"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
