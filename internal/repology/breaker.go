package repology

import (
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"

	"github.com/mozilla-ai/repology-mcp/internal/domain"
)

const (
	BreakerStateDisabled = "disabled"
	BreakerStateClosed   = "closed"
	BreakerStateOpen     = "open"
)

// newBreaker creates a circuit breaker which trips after threshold consecutive failures
// and backs off exponentially before letting a trial request through.
func newBreaker(threshold int64) *circuit.Breaker {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	return circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(threshold),
	})
}

// BreakerState reports the circuit breaker state: disabled, closed or open.
func (c *Client) BreakerState() string {
	switch {
	case c.breaker == nil:
		return BreakerStateDisabled
	case c.breaker.Tripped():
		return BreakerStateOpen
	default:
		return BreakerStateClosed
	}
}

// Health reports the upstream health. The service is degraded while the circuit breaker is open.
func (c *Client) Health() domain.UpstreamHealth {
	state := c.BreakerState()

	status := domain.HealthStatusOK
	if state == BreakerStateOpen {
		status = domain.HealthStatusDegraded
	}

	return domain.UpstreamHealth{
		Status:  status,
		BaseURL: c.baseURL,
		Breaker: state,
	}
}
