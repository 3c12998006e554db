package apriori

import "sort"

// candidates returns the size-k candidates for the configured strategy.
// previous holds the frequent itemsets of size k-1 in table order.
func (m *Miner) candidates(k int, previous []Itemset, table *Table) []Itemset {
	if k == 1 || m.strategy == StrategyExhaustive {
		return universeCandidates(m.universe, k)
	}
	return joinCandidates(previous, table)
}

// universeCandidates returns every size-k combination of items.
func universeCandidates(items []string, k int) []Itemset {
	var out []Itemset
	_ = combinations(items, k, func(c Itemset) error {
		set := make(Itemset, len(c))
		copy(set, c)
		out = append(out, set)
		return nil
	})
	return out
}

// joinCandidates merges pairs of frequent (k-1)-itemsets sharing their
// first k-2 items, then drops any candidate with a (k-1)-subset missing
// from the table.
func joinCandidates(previous []Itemset, table *Table) []Itemset {
	sorted := make([]Itemset, len(previous))
	copy(sorted, previous)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].less(sorted[j]) })

	var out []Itemset
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			if !samePrefix(a, b) {
				// Sorted order groups equal prefixes together.
				break
			}
			c := make(Itemset, 0, len(a)+1)
			c = append(c, a...)
			c = append(c, b[len(b)-1])
			if allSubsetsFrequent(c, table) {
				out = append(out, c)
			}
		}
	}
	return out
}

func samePrefix(a, b Itemset) bool {
	for i := 0; i < len(a)-1; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// allSubsetsFrequent checks every subset of c with one item removed.
func allSubsetsFrequent(c Itemset, table *Table) bool {
	sub := make(Itemset, 0, len(c)-1)
	for skip := range c {
		sub = sub[:0]
		for i, item := range c {
			if i != skip {
				sub = append(sub, item)
			}
		}
		if _, ok := table.entries[sub.Key()]; !ok {
			return false
		}
	}
	return true
}
