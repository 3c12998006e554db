package apriori

import (
	"fmt"
	"math"
)

// Strategy selects how candidates are generated at each level.
type Strategy string

const (
	// StrategyApriori joins the previous level's survivors and prunes
	// candidates that have an infrequent subset.
	StrategyApriori Strategy = "apriori"

	// StrategyExhaustive draws every size-k combination from the full item
	// universe at each level. It produces the same table as StrategyApriori
	// and counts far more candidates.
	StrategyExhaustive Strategy = "exhaustive"
)

// ParseStrategy converts a name to a Strategy. The empty string selects
// StrategyApriori.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyApriori:
		return StrategyApriori, nil
	case StrategyExhaustive:
		return StrategyExhaustive, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q (want %q or %q)",
			ErrInvalidConfiguration, name, StrategyApriori, StrategyExhaustive)
	}
}

// Config holds the two thresholds of a mining run.
type Config struct {
	MinSupport    float64
	MinConfidence float64
}

// Validate checks that both thresholds are in (0, 1].
func (c Config) Validate() error {
	if err := validateThreshold("min support", c.MinSupport); err != nil {
		return err
	}
	return validateThreshold("min confidence", c.MinConfidence)
}

func validateThreshold(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v > 1 {
		return fmt.Errorf("%w: %s %v must be in (0, 1]", ErrInvalidConfiguration, name, v)
	}
	return nil
}

// thresholdEpsilon absorbs float error in MinSupport × N so that
// 0.7 × 10 requires 7 transactions rather than 8.
const thresholdEpsilon = 1e-9

// MinCount returns the smallest support count that satisfies
// count >= minSupport × transactions. It is never below 1 for a non-empty
// dataset, so an itemset seen in no transaction is never frequent.
func MinCount(minSupport float64, transactions int) int {
	if transactions <= 0 {
		return 0
	}
	n := int(math.Ceil(minSupport*float64(transactions) - thresholdEpsilon))
	if n < 1 {
		return 1
	}
	return n
}
