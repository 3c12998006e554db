package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blackwell-systems/basket/internal/apriori"
	"github.com/blackwell-systems/basket/internal/store"
)

// Load reads a report file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse report file: %w", err)
	}
	return &doc, nil
}

// Table rebuilds the itemset table of the document.
func (d *Document) Table() *apriori.Table {
	itemsets := make([]apriori.FrequentItemset, len(d.Itemsets))
	for i, e := range d.Itemsets {
		itemsets[i] = apriori.FrequentItemset{Items: apriori.NewItemset(e.Items...), Support: e.Support}
	}
	return apriori.NewTable(d.Run.Transactions, itemsets)
}

// RuleList rebuilds the rules of the document in their stored order.
func (d *Document) RuleList() []apriori.Rule {
	rules := make([]apriori.Rule, len(d.Rules))
	for i, e := range d.Rules {
		rules[i] = apriori.Rule{
			Antecedent: apriori.NewItemset(e.Antecedent...),
			Consequent: apriori.NewItemset(e.Consequent...),
			Support:    e.Support,
			Confidence: e.Confidence,
			Lift:       e.Lift,
		}
	}
	return rules
}

// Validate checks that the document has transactions behind its itemsets
// and that every rule's itemsets are present in the document's itemsets.
func (d *Document) Validate() error {
	if d.Run.Transactions <= 0 && len(d.Itemsets) > 0 {
		return fmt.Errorf("%w: %d itemsets recorded over %d transactions",
			apriori.ErrInternalConsistency, len(d.Itemsets), d.Run.Transactions)
	}

	table := d.Table()
	for i, r := range d.RuleList() {
		if _, ok := table.Support(r.Antecedent...); !ok {
			return fmt.Errorf("%w: rule %d antecedent %s missing from itemsets", apriori.ErrInternalConsistency, i+1, r.Antecedent)
		}
		if _, ok := table.Support(r.Consequent...); !ok {
			return fmt.Errorf("%w: rule %d consequent %s missing from itemsets", apriori.ErrInternalConsistency, i+1, r.Consequent)
		}
		if _, ok := table.Support(r.Itemset()...); !ok {
			return fmt.Errorf("%w: rule %d itemset %s missing from itemsets", apriori.ErrInternalConsistency, i+1, r.Itemset())
		}
	}
	return nil
}

// Import loads a report file and saves it as a new run. The new run id is
// returned; the id recorded in the file is not reused.
func (m *Manager) Import(path string) (int64, error) {
	doc, err := Load(path)
	if err != nil {
		return 0, err
	}
	if err := doc.Validate(); err != nil {
		return 0, fmt.Errorf("invalid report %s: %w", path, err)
	}

	run := &store.Run{
		Source:        doc.Run.Source,
		Transactions:  doc.Run.Transactions,
		DistinctItems: doc.Run.DistinctItems,
		MinSupport:    doc.Run.MinSupport,
		MinConfidence: doc.Run.MinConfidence,
		Strategy:      doc.Run.Strategy,
	}
	id, err := m.store.SaveRun(run, doc.Table(), doc.RuleList())
	if err != nil {
		return 0, fmt.Errorf("failed to save imported run: %w", err)
	}
	return id, nil
}
