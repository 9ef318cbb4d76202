package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Farm metric names
const (
	MetricNameCropsPlanted   = "farm_crops_planted_total"
	MetricNameCropsHarvested = "farm_crops_harvested_total"
	MetricNameCropsStolen    = "farm_crops_stolen_total"
	MetricNameCoinsSpent     = "farm_coins_spent_total"
	MetricNameCoinsHarvested = "farm_coins_harvested_total"
	MetricNameCoinsStolen    = "farm_coins_stolen_total"
	MetricNameLevelUps       = "farm_level_ups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Farm metric help text
const (
	HelpTextCropsPlanted   = "Total number of crops planted"
	HelpTextCropsHarvested = "Total number of crops harvested"
	HelpTextCropsStolen    = "Total number of successful thefts"
	HelpTextCoinsSpent     = "Total coins spent on seeds"
	HelpTextCoinsHarvested = "Total coins paid to owners by harvests"
	HelpTextCoinsStolen    = "Total coins paid to thieves"
	HelpTextLevelUps       = "Total number of level ups"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelCrop   = "crop"
)

// UnmatchedRoute labels requests that matched no route
const UnmatchedRoute = "unmatched"

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
