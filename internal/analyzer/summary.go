package analyzer

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/basket/internal/apriori"
)

// topItemsLimit caps Summary.TopItems.
const topItemsLimit = 10

// Summarize aggregates a mined table and its rules.
func Summarize(table *apriori.Table, rules []apriori.Rule) *Summary {
	summary := &Summary{
		Transactions:   table.Transactions(),
		ItemsetsBySize: make(map[int]int),
		RulesByTier: map[string]int{
			TierStrong:   0,
			TierModerate: 0,
			TierWeak:     0,
		},
	}

	for _, fi := range table.Itemsets() {
		summary.ItemsetsBySize[fi.Items.Len()]++
	}
	for _, r := range rules {
		summary.RulesByTier[ClassifyRule(r)]++
	}

	singles := table.OfSize(1)
	sort.SliceStable(singles, func(i, j int) bool {
		return singles[i].Support > singles[j].Support
	})
	if len(singles) > topItemsLimit {
		singles = singles[:topItemsLimit]
	}
	summary.TopItems = singles

	return summary
}

// Summarize loads a saved run and aggregates it.
func (a *Analyzer) Summarize(runID int64) (*Summary, error) {
	table, err := a.store.GetTable(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itemsets: %w", err)
	}
	rules, err := a.store.GetRules(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}
	return Summarize(table, rules), nil
}
