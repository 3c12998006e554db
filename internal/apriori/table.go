package apriori

import "sort"

// FrequentItemset is an itemset together with its support count.
type FrequentItemset struct {
	Items   Itemset
	Support int
}

// Table maps frequent itemsets to their support counts. A Table is
// immutable once returned by the miner.
type Table struct {
	entries      map[string]FrequentItemset
	transactions int
}

func newTable(transactions int) *Table {
	return &Table{
		entries:      make(map[string]FrequentItemset),
		transactions: transactions,
	}
}

// NewTable builds a table from precomputed entries, for callers that load
// mining results back from storage. Entries with the same members are
// collapsed; the last one wins.
func NewTable(transactions int, itemsets []FrequentItemset) *Table {
	t := newTable(transactions)
	for _, fi := range itemsets {
		t.add(NewItemset(fi.Items...), fi.Support)
	}
	return t
}

func (t *Table) add(items Itemset, support int) {
	t.entries[items.Key()] = FrequentItemset{Items: items, Support: support}
}

// Len returns the number of frequent itemsets.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Transactions returns the size of the dataset the table was mined from.
func (t *Table) Transactions() int {
	if t == nil {
		return 0
	}
	return t.transactions
}

// Support returns the support count of items and whether it is frequent.
// items need not be canonical.
func (t *Table) Support(items ...string) (int, bool) {
	if t == nil {
		return 0, false
	}
	fi, ok := t.entries[NewItemset(items...).Key()]
	return fi.Support, ok
}

// SupportRatio returns support / transactions for a count. It is zero for
// an empty dataset.
func (t *Table) SupportRatio(support int) float64 {
	if t == nil || t.transactions == 0 {
		return 0
	}
	return float64(support) / float64(t.transactions)
}

// Itemsets returns a copy of the table entries ordered by size and then
// lexicographically.
func (t *Table) Itemsets() []FrequentItemset {
	if t == nil {
		return nil
	}
	out := make([]FrequentItemset, 0, len(t.entries))
	for _, fi := range t.entries {
		items := make(Itemset, len(fi.Items))
		copy(items, fi.Items)
		out = append(out, FrequentItemset{Items: items, Support: fi.Support})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Items.less(out[j].Items)
	})
	return out
}

// OfSize returns the entries with exactly k items, in table order.
func (t *Table) OfSize(k int) []FrequentItemset {
	var out []FrequentItemset
	for _, fi := range t.Itemsets() {
		if fi.Items.Len() == k {
			out = append(out, fi)
		}
	}
	return out
}

// MaxSize returns the size of the largest frequent itemset.
func (t *Table) MaxSize() int {
	largest := 0
	if t == nil {
		return largest
	}
	for _, fi := range t.entries {
		if fi.Items.Len() > largest {
			largest = fi.Items.Len()
		}
	}
	return largest
}
