package types

import (
	"errors"
	"fmt"
)

// Origin is the provenance category of a unit of value. Only origins in
// the approved set may enter the ledger.
type Origin string

// Approved origin categories.
const (
	OriginMining  Origin = "mining"
	OriginP2P     Origin = "p2p"
	OriginRewards Origin = "rewards"
)

// ApprovedOrigins is the closed set of origins admitted by policy.
// Adding or removing a category is a single declarative change here.
var ApprovedOrigins = []Origin{OriginMining, OriginP2P, OriginRewards}

// ErrInvalidOrigin indicates an origin outside the approved set.
var ErrInvalidOrigin = errors.New("origin not in approved set")

// Approved returns true if the origin is in the approved set.
func (o Origin) Approved() bool {
	switch o {
	case OriginMining, OriginP2P, OriginRewards:
		return true
	}
	return false
}

// String returns the origin label.
func (o Origin) String() string {
	return string(o)
}

// ParseOrigin validates a label against the approved set.
func ParseOrigin(s string) (Origin, error) {
	o := Origin(s)
	if !o.Approved() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrigin, s)
	}
	return o, nil
}
