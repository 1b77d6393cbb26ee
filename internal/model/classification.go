package model

import "time"

// MatchTier records which signal produced a classification. Tag matches are
// authoritative and always outrank pattern matches, which outrank keyword
// matches; rule priority only breaks ties inside a single tier.
type MatchTier string

const (
	// TierTag means the simulation engine's own record type matched a rule.
	TierTag MatchTier = "tag"
	// TierPattern means a name regex matched.
	TierPattern MatchTier = "pattern"
	// TierKeyword means a case-insensitive keyword substring matched.
	TierKeyword MatchTier = "keyword"
	// TierNone means nothing matched and the category fell back to Unknown.
	TierNone MatchTier = "none"
)

// ReviewStatus tracks a classification through the override state machine.
type ReviewStatus string

const (
	// StatusProposed is the initial state after the classifier runs.
	StatusProposed ReviewStatus = "proposed"
	// StatusSubtypeRequired is entered when a reviewer changes the category;
	// the old subtype no longer applies and a new one must be chosen.
	StatusSubtypeRequired ReviewStatus = "subtype_required"
	// StatusCommitted is terminal; a committed result is immutable.
	StatusCommitted ReviewStatus = "committed"
)

// ClassificationResult is the outcome of classifying one block. It is
// created once per block per run, mutated only by the review step, and
// consumed exactly once by the cost engine after commit.
type ClassificationResult struct {
	ClassifiedAt time.Time         `json:"classified_at"`
	BlockName    string            `json:"block_name"`
	Category     EquipmentCategory `json:"category"`
	Subtype      string            `json:"subtype"`
	Material     string            `json:"material"`
	Tier         MatchTier         `json:"tier"`
	Status       ReviewStatus      `json:"status"`
	Confidence   float64           `json:"confidence"`
	Overridden   bool              `json:"overridden"`
}

// Committed reports whether the result has reached its terminal state.
func (r *ClassificationResult) Committed() bool {
	return r.Status == StatusCommitted
}
