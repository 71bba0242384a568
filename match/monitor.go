package match

import "github.com/poiesic/souk/core"

// Stage identifies which sub-rule of the matching composition rejected or
// passed a pair.
type Stage string

const (
	// StageGates covers intent, subintent, domain, and mutual-category gating.
	StageGates Stage = "gates"
	// StageItems covers required-item coverage and item exclusions.
	StageItems Stage = "items"
	// StageDirections covers the directional preference bundles.
	StageDirections Stage = "directions"
	// StageLocation covers the location constraint.
	StageLocation Stage = "location"
)

// Monitor observes matching decisions. Implementations must be cheap and
// safe for concurrent use; matching calls them inline.
type Monitor interface {
	// StagePassed is called as each sub-rule of a pair evaluation passes.
	StagePassed(query, candidate core.ID, stage Stage)

	// PairRejected is called once when a pair fails, naming the rejecting stage.
	PairRejected(query, candidate core.ID, stage Stage)

	// PairMatched is called once when every sub-rule passes.
	PairMatched(query, candidate core.ID)
}

// NopMonitor is the default Monitor; it records nothing.
type NopMonitor struct{}

func (NopMonitor) StagePassed(core.ID, core.ID, Stage) {}
func (NopMonitor) PairRejected(core.ID, core.ID, Stage) {}
func (NopMonitor) PairMatched(core.ID, core.ID)        {}
