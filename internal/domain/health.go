package domain

const (
	HealthStatusOK       HealthStatus = "ok"
	HealthStatusDegraded HealthStatus = "degraded"
)

// HealthStatus represents the internal state of the service's availability.
type HealthStatus string

// UpstreamHealth tracks the internal health state of the Repology API connection.
type UpstreamHealth struct {
	Status  HealthStatus
	BaseURL string

	// Breaker is the circuit breaker state: disabled, closed or open.
	Breaker string
}
