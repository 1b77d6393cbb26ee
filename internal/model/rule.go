package model

// ClassificationRule maps classifier signals to one equipment category.
// RecordTypes are exact-match tags reported by the simulation engine;
// Patterns are regular expressions over the block's display name; Keywords
// are case-insensitive substrings. Priority breaks ties between rules that
// matched in the same tier, higher winning. ConfidenceBonus is the
// category-specific bump added on top of the tier base score.
type ClassificationRule struct {
	Category        EquipmentCategory `json:"category"`
	DefaultSubtype  string            `json:"default_subtype"`
	RecordTypes     []string          `json:"record_types"`
	Patterns        []string          `json:"patterns"`
	Keywords        []string          `json:"keywords"`
	Priority        int               `json:"priority"`
	ConfidenceBonus float64           `json:"confidence_bonus"`
}
