package analyzer

import "github.com/blackwell-systems/basket/internal/apriori"

// Rule strength tiers.
const (
	TierStrong   = "strong"
	TierModerate = "moderate"
	TierWeak     = "weak"
)

// RuleScore is a rule together with the supports it was derived from.
type RuleScore struct {
	Position          int // 1-based position in the run's rule list
	Rule              apriori.Rule
	Tier              string // "strong", "moderate", "weak"
	Transactions      int
	AntecedentSupport int
	ConsequentSupport int
	SupportRatio      float64 // rule support / transactions
	Reason            string  // Human-readable summary
	Explanation       ScoreExplanation
}

// ScoreExplanation provides a detailed breakdown of the rule metrics.
type ScoreExplanation struct {
	SupportDetail    string // "3 of 5 transactions (60.0%)"
	ConfidenceDetail string // "3 of 4 baskets with {bread} also have {milk}"
	LiftDetail       string // "1.25x more likely than baseline"
}

// Recommendation is an item suggested for a basket by one or more rules.
type Recommendation struct {
	Item       string
	Confidence float64      // best confidence among supporting rules
	Lift       float64      // lift of the best rule
	Rule       apriori.Rule // the best supporting rule
	RuleCount  int          // number of rules implying the item
}

// Summary aggregates a run's itemsets and rules.
type Summary struct {
	Transactions   int
	ItemsetsBySize map[int]int
	RulesByTier    map[string]int
	TopItems       []apriori.FrequentItemset // single items by support, descending
}
