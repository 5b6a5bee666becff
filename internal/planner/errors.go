// Package planner orchestrates a route analysis request: carrier
// lookup, candidate construction, parallel per-route evaluation,
// scoring, and recommendation synthesis.
package planner

import "fmt"

// Kind classifies a request-level failure.
type Kind string

const (
	// KindUnknownCarrier: the requested carrier id is not in reference
	// data. Fatal for the request, no retry.
	KindUnknownCarrier Kind = "UNKNOWN_CARRIER"

	// KindNoRoutesFound: no route exists between the given ports.
	KindNoRoutesFound Kind = "NO_ROUTES_FOUND"

	// KindEmptyCandidateSet: routes existed but every candidate was
	// dropped for unusable geometry or total simulation failure.
	KindEmptyCandidateSet Kind = "EMPTY_CANDIDATE_SET"
)

// Error is the structured failure returned at the planner boundary.
// Per-segment and per-route problems degrade gracefully and never
// surface here; only cross-cutting failures abort a request.
type Error struct {
	Kind            Kind   `json:"kind"`
	CarrierID       string `json:"carrierId,omitempty"`
	OriginPort      string `json:"originPort,omitempty"`
	DestinationPort string `json:"destinationPort,omitempty"`
	Err             error  `json:"-"`
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnknownCarrier:
		return fmt.Sprintf("carrier %q not found in reference data", e.CarrierID)
	case KindNoRoutesFound:
		return fmt.Sprintf("no routes found between %q and %q", e.OriginPort, e.DestinationPort)
	case KindEmptyCandidateSet:
		return fmt.Sprintf("no usable route candidates between %q and %q", e.OriginPort, e.DestinationPort)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }
