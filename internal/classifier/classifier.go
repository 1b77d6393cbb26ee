package classifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/model"
)

// Confidence scoring. The tag tier is authoritative: the record type comes
// from the simulation engine's own model, so its floor is 0.95. Name-based
// tiers start from the 0.80 base plus their tier bonus plus the rule's
// category bonus, capped at 1.0.
const (
	tagBase      = 0.95
	nameBase     = 0.80
	patternBonus = 0.15
	keywordBonus = 0.05
)

// Classifier evaluates blocks against the rule table. It is safe for
// concurrent use once constructed; nothing mutates the table afterwards.
type Classifier struct {
	tagIndex map[string]int
	compiled map[int][]*regexp.Regexp
	rules    []model.ClassificationRule
}

// New creates a classifier over the built-in rule table.
func New() *Classifier {
	c, err := NewWithRules(DefaultRules())
	if err != nil {
		// The built-in table is compiled in tests; an invalid default
		// pattern is a programming error.
		panic(err)
	}
	return c
}

// NewWithRules creates a classifier over a custom rule table, pre-compiling
// every name pattern. An invalid pattern is rejected up front rather than
// silently skipped at match time.
func NewWithRules(rules []model.ClassificationRule) (*Classifier, error) {
	c := &Classifier{
		rules:    rules,
		tagIndex: make(map[string]int),
		compiled: make(map[int][]*regexp.Regexp),
	}

	for i, rule := range rules {
		for _, tag := range rule.RecordTypes {
			if _, exists := c.tagIndex[tag]; exists {
				return nil, fmt.Errorf("record type %q appears in more than one rule: %w", tag, common.ErrDuplicateEntry)
			}
			c.tagIndex[tag] = i
		}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q for category %s: %w", pattern, rule.Category, err)
			}
			c.compiled[i] = append(c.compiled[i], re)
		}
	}

	return c, nil
}

// Classify resolves one block to a category, subtype guess and confidence.
// It is a pure function of the rule table and the block; timestamps are
// applied at persistence time. It never fails: Unknown with zero
// confidence is the designed fallback.
// The record-type tag always wins over the display name, so a block tagged
// "Pump" but named "REACTOR-7" still classifies as a pump.
func (c *Classifier) Classify(_ context.Context, block model.Block) model.ClassificationResult {
	result := model.ClassificationResult{
		BlockName: block.Name,
		Category:  model.CategoryUnknown,
		Tier:      model.TierNone,
		Status:    model.StatusProposed,
	}

	if block.RecordType != "" {
		if i, ok := c.tagIndex[block.RecordType]; ok {
			c.apply(&result, i, model.TierTag)
			return result
		}
	}

	if i, ok := c.matchPatterns(block.Name); ok {
		c.apply(&result, i, model.TierPattern)
		return result
	}

	if i, ok := c.matchKeywords(block.Name); ok {
		c.apply(&result, i, model.TierKeyword)
		return result
	}

	return result
}

func (c *Classifier) apply(result *model.ClassificationResult, ruleIdx int, tier model.MatchTier) {
	rule := c.rules[ruleIdx]
	result.Category = rule.Category
	result.Subtype = rule.DefaultSubtype
	result.Tier = tier

	switch tier {
	case model.TierTag:
		result.Confidence = tagBase + rule.ConfidenceBonus
	case model.TierPattern:
		result.Confidence = nameBase + patternBonus + rule.ConfidenceBonus
	case model.TierKeyword:
		result.Confidence = nameBase + keywordBonus + rule.ConfidenceBonus
	case model.TierNone:
		result.Confidence = 0
	}
	if result.Confidence > 1.0 {
		result.Confidence = 1.0
	}
}

// matchPatterns returns the highest-priority rule whose pattern set matches
// the name. Ties on priority resolve to the earlier rule in declaration
// order, so results are reproducible for any input.
func (c *Classifier) matchPatterns(name string) (int, bool) {
	best := -1
	for i := range c.rules {
		if !c.patternsMatch(i, name) {
			continue
		}
		if best == -1 || c.rules[i].Priority > c.rules[best].Priority {
			best = i
		}
	}
	return best, best >= 0
}

func (c *Classifier) patternsMatch(ruleIdx int, name string) bool {
	for _, re := range c.compiled[ruleIdx] {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// matchKeywords returns the highest-priority rule with a case-insensitive
// keyword substring match, with the same declaration-order tie-break as the
// pattern tier.
func (c *Classifier) matchKeywords(name string) (int, bool) {
	upper := strings.ToUpper(name)
	best := -1
	for i, rule := range c.rules {
		if !keywordsMatch(rule.Keywords, upper) {
			continue
		}
		if best == -1 || rule.Priority > c.rules[best].Priority {
			best = i
		}
	}
	return best, best >= 0
}

func keywordsMatch(keywords []string, upperName string) bool {
	for _, kw := range keywords {
		if strings.Contains(upperName, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}
