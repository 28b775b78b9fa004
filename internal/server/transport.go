package server

import (
	"fmt"
	"slices"
	"strings"
)

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
	TransportSSE   Transport = "sse"
)

// Transport selects how the MCP server is exposed to clients.
type Transport string

// Transports is a collection of Transport values.
type Transports []Transport

// AllowedTransports returns the supported transports, sorted.
func AllowedTransports() Transports {
	transports := []Transport{
		TransportHTTP,
		TransportSSE,
		TransportStdio,
	}

	slices.Sort(transports)

	return transports
}

// String implements fmt.Stringer for a collection of transports,
// converting them to a comma separated string.
func (t *Transports) String() string {
	ts := *t
	out := make([]string, len(ts))
	for i := range ts {
		out[i] = ts[i].String()
	}
	return strings.Join(out, ", ")
}

// String implements fmt.Stringer for a transport.
// This is also required by Cobra as part of implementing flag.Value.
func (t *Transport) String() string {
	return strings.ToLower(string(*t))
}

// Set is used by Cobra to set the transport value from a string.
// This is also required by Cobra as part of implementing flag.Value.
func (t *Transport) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	allowed := AllowedTransports()

	for _, a := range allowed {
		if string(a) == v {
			*t = Transport(v)
			return nil
		}
	}

	return fmt.Errorf("invalid transport '%s', must be one of %v", v, allowed.String())
}

// Type is used by Cobra to get the 'type' of a transport for display purposes.
// This is also required by Cobra as part of implementing flag.Value.
func (t *Transport) Type() string {
	return "transport"
}
