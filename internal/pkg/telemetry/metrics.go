package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricAPILatencyP50 = "api.latency.p50"
	MetricAPILatencyP95 = "api.latency.p95"
	MetricAPILatencyP99 = "api.latency.p99"

	// Throughput
	MetricRequestsPerSec = "api.requests_per_second"

	// Freshness
	MetricPlaceDataAge    = "places.data_age_seconds"
	MetricLocationPingLag = "safety.location_ping_lag"

	// Availability
	MetricUptime = "service.uptime_percentage"

	// Business
	MetricPlansSaved = "business.plans_saved"
	MetricSOSRaised  = "business.sos_alerts_raised"
)
