package analyzer

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/basket/internal/apriori"
	mapset "github.com/deckarep/golang-set/v2"
)

// Recommend returns the items implied by rules whose antecedent is fully
// contained in basket. Items already in the basket are never suggested.
// Results are ordered by confidence, then lift, then item name. A limit of
// zero or less returns every recommendation.
func Recommend(basket []string, rules []apriori.Rule, limit int) []Recommendation {
	have := mapset.NewThreadUnsafeSet[string](basket...)
	byItem := make(map[string]*Recommendation)

	for _, r := range rules {
		if !have.Contains(r.Antecedent...) {
			continue
		}
		for _, item := range r.Consequent {
			if have.Contains(item) {
				continue
			}
			rec, ok := byItem[item]
			if !ok {
				byItem[item] = &Recommendation{Item: item, Confidence: r.Confidence, Lift: r.Lift, Rule: r, RuleCount: 1}
				continue
			}
			rec.RuleCount++
			if betterRule(r, rec.Rule) {
				rec.Confidence = r.Confidence
				rec.Lift = r.Lift
				rec.Rule = r
			}
		}
	}

	recs := make([]Recommendation, 0, len(byItem))
	for _, rec := range byItem {
		recs = append(recs, *rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		if recs[i].Lift != recs[j].Lift {
			return recs[i].Lift > recs[j].Lift
		}
		return recs[i].Item < recs[j].Item
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// betterRule reports whether a should replace b as the supporting rule.
func betterRule(a, b apriori.Rule) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if a.Lift != b.Lift {
		return a.Lift > b.Lift
	}
	return a.Antecedent.Len() < b.Antecedent.Len()
}

// Recommend applies the rules of a saved run to basket.
func (a *Analyzer) Recommend(runID int64, basket []string, limit int) ([]Recommendation, error) {
	if len(basket) == 0 {
		return nil, fmt.Errorf("%w: empty basket", apriori.ErrInvalidInput)
	}

	if _, err := a.store.GetRun(runID); err != nil {
		return nil, err
	}
	rules, err := a.store.GetRules(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}

	return Recommend(basket, rules, limit), nil
}
