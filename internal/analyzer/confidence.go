package analyzer

import (
	"fmt"

	"github.com/blackwell-systems/basket/internal/apriori"
)

// Tier thresholds.
const (
	// StrongConfidence is the confidence a rule needs, together with a
	// lift above 1, to be classified strong.
	StrongConfidence = 0.8

	// ModerateConfidence is the confidence at which a rule without positive
	// lift is still classified moderate.
	ModerateConfidence = 0.6
)

// ClassifyRule returns the strength tier of r.
//   - strong: confidence >= 0.8 and lift > 1
//   - moderate: confidence >= 0.6, or lift > 1
//   - weak: everything else
func ClassifyRule(r apriori.Rule) string {
	switch {
	case r.Confidence >= StrongConfidence && r.Lift > 1:
		return TierStrong
	case r.Confidence >= ModerateConfidence || r.Lift > 1:
		return TierModerate
	default:
		return TierWeak
	}
}

// ScoreRule scores r against the table it was mined from. position is the
// rule's 1-based position in its run.
func ScoreRule(r apriori.Rule, position int, table *apriori.Table) (*RuleScore, error) {
	anteSupport, ok := table.Support(r.Antecedent...)
	if !ok {
		return nil, fmt.Errorf("%w: antecedent %s not in table", apriori.ErrInternalConsistency, r.Antecedent)
	}
	consSupport, ok := table.Support(r.Consequent...)
	if !ok {
		return nil, fmt.Errorf("%w: consequent %s not in table", apriori.ErrInternalConsistency, r.Consequent)
	}

	score := &RuleScore{
		Position:          position,
		Rule:              r,
		Tier:              ClassifyRule(r),
		Transactions:      table.Transactions(),
		AntecedentSupport: anteSupport,
		ConsequentSupport: consSupport,
		SupportRatio:      table.SupportRatio(r.Support),
	}
	score.Reason = generateReason(score)
	score.Explanation = generateExplanation(score)
	return score, nil
}

// ExplainRule loads rule number position (1-based) of a saved run and
// scores it.
func (a *Analyzer) ExplainRule(runID int64, position int) (*RuleScore, error) {
	rules, err := a.store.GetRules(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}
	if position < 1 || position > len(rules) {
		return nil, fmt.Errorf("rule %d out of range (run %d has %d rules)", position, runID, len(rules))
	}

	table, err := a.store.GetTable(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itemsets: %w", err)
	}

	return ScoreRule(rules[position-1], position, table)
}

// ScoreRun scores every rule of a saved run, in mined order.
func (a *Analyzer) ScoreRun(runID int64) ([]*RuleScore, error) {
	rules, err := a.store.GetRules(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}
	table, err := a.store.GetTable(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itemsets: %w", err)
	}

	scores := make([]*RuleScore, 0, len(rules))
	for i, r := range rules {
		score, err := ScoreRule(r, i+1, table)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// generateReason creates a one-line summary of the score.
func generateReason(score *RuleScore) string {
	r := score.Rule
	switch score.Tier {
	case TierStrong:
		return "reliable rule with positive association"
	case TierModerate:
		if r.Lift <= 1 {
			return "frequent pairing, but no better than chance"
		}
		return "positive association, review confidence"
	}
	if r.Lift < 1 {
		return "items appear together less than chance"
	}
	return "low confidence"
}

func generateExplanation(score *RuleScore) ScoreExplanation {
	r := score.Rule
	explanation := ScoreExplanation{
		SupportDetail: fmt.Sprintf("%d of %d transactions (%.1f%%)",
			r.Support, score.Transactions, score.SupportRatio*100),
		ConfidenceDetail: fmt.Sprintf("%d of %d baskets with %s also have %s",
			r.Support, score.AntecedentSupport, r.Antecedent, r.Consequent),
	}

	switch {
	case r.Lift > 1:
		explanation.LiftDetail = fmt.Sprintf("%.2fx more likely than baseline", r.Lift)
	case r.Lift < 1:
		explanation.LiftDetail = fmt.Sprintf("%.2fx as likely as baseline (negative association)", r.Lift)
	default:
		explanation.LiftDetail = "independent of antecedent"
	}
	return explanation
}
