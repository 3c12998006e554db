package apriori

import (
	"fmt"
)

// Rule is an association rule Antecedent => Consequent drawn from one
// frequent itemset.
type Rule struct {
	Antecedent Itemset
	Consequent Itemset
	Support    int     // support count of Antecedent ∪ Consequent
	Confidence float64 // Support / support(Antecedent)
	Lift       float64 // Confidence / support ratio of Consequent
}

// Itemset returns the union of antecedent and consequent.
func (r Rule) Itemset() Itemset {
	items := make([]string, 0, len(r.Antecedent)+len(r.Consequent))
	items = append(items, r.Antecedent...)
	items = append(items, r.Consequent...)
	return NewItemset(items...)
}

func (r Rule) String() string {
	return fmt.Sprintf("%s => %s (confidence %.3f)", r.Antecedent, r.Consequent, r.Confidence)
}

// RulesFromTable derives every rule with confidence >= minConfidence from
// the itemsets of size two or more in t. Rules are ordered by source
// itemset (table order), then antecedent size, then antecedent members.
func RulesFromTable(t *Table, minConfidence float64) ([]Rule, error) {
	if err := validateThreshold("min confidence", minConfidence); err != nil {
		return nil, err
	}

	if t.Len() > 0 && t.Transactions() <= 0 {
		return nil, fmt.Errorf("%w: %d itemsets over %d transactions",
			ErrInternalConsistency, t.Len(), t.Transactions())
	}

	rules := []Rule{}
	for _, fi := range t.Itemsets() {
		if fi.Items.Len() < 2 {
			continue
		}
		for size := 1; size < fi.Items.Len(); size++ {
			err := combinations(fi.Items, size, func(ante Itemset) error {
				rule, ok, err := deriveRule(t, fi, ante, minConfidence)
				if err != nil {
					return err
				}
				if ok {
					rules = append(rules, rule)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return rules, nil
}

func deriveRule(t *Table, fi FrequentItemset, ante Itemset, minConfidence float64) (Rule, bool, error) {
	anteEntry, ok := t.entries[ante.Key()]
	if !ok || anteEntry.Support == 0 {
		return Rule{}, false, fmt.Errorf("%w: antecedent %s of %s has no support entry",
			ErrInternalConsistency, ante, fi.Items)
	}

	confidence := float64(fi.Support) / float64(anteEntry.Support)
	if confidence < minConfidence {
		return Rule{}, false, nil
	}

	antecedent := make(Itemset, len(ante))
	copy(antecedent, ante)
	consequent := fi.Items.Minus(antecedent)

	consEntry, ok := t.entries[consequent.Key()]
	if !ok || consEntry.Support == 0 {
		return Rule{}, false, fmt.Errorf("%w: consequent %s of %s has no support entry",
			ErrInternalConsistency, consequent, fi.Items)
	}

	return Rule{
		Antecedent: antecedent,
		Consequent: consequent,
		Support:    fi.Support,
		Confidence: confidence,
		Lift:       confidence / t.SupportRatio(consEntry.Support),
	}, true, nil
}
