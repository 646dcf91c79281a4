// Package verify implements the origin-verification gate. Every unit of
// value entering or moving through the system is checked against the
// approved provenance set before it may be verified or spent.
package verify

import (
	"github.com/picoin-tech/picoin-core/pkg/types"
)

// Claim is a single batch-verification entry: a declared source, the
// identifier of the unit being claimed, and its amount.
type Claim struct {
	Source string       `json:"source"`
	ID     string       `json:"id"`
	Amount types.Amount `json:"amount"`
}

// Verifier gates value by declared provenance against a closed origin set.
// Verification is a pure predicate: a disallowed origin is a normal
// negative result, never an error.
type Verifier struct {
	approved map[types.Origin]struct{}
}

// New creates a verifier for the given approved origins. An empty list
// falls back to the full declared set.
func New(origins []types.Origin) *Verifier {
	if len(origins) == 0 {
		origins = types.ApprovedOrigins
	}
	approved := make(map[types.Origin]struct{}, len(origins))
	for _, o := range origins {
		approved[o] = struct{}{}
	}
	return &Verifier{approved: approved}
}

// ApprovedOrigin reports whether the origin is in this verifier's set.
func (v *Verifier) ApprovedOrigin(origin types.Origin) bool {
	_, ok := v.approved[origin]
	return ok
}

// VerifyOrigin returns true iff the origin is approved, the amount is
// positive, and the identifier has the digest format.
func (v *Verifier) VerifyOrigin(origin types.Origin, id string, amount types.Amount) bool {
	if !v.ApprovedOrigin(origin) {
		return false
	}
	if amount == 0 {
		return false
	}
	return types.WellFormedID(id)
}

// BatchVerify evaluates each claim independently with the same rule as
// VerifyOrigin. The result has the same length and order as the input;
// one invalid entry does not affect evaluation of the others.
func (v *Verifier) BatchVerify(claims []Claim) []bool {
	results := make([]bool, len(claims))
	for i, c := range claims {
		results[i] = v.VerifyOrigin(types.Origin(c.Source), c.ID, c.Amount)
	}
	return results
}
