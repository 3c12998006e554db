package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/basket/internal/apriori"
	"github.com/blackwell-systems/basket/internal/store"
)

// Build assembles the Document for a saved run.
func (m *Manager) Build(runID int64) (*Document, error) {
	run, err := m.store.GetRun(runID)
	if err != nil {
		return nil, err
	}
	table, err := m.store.GetTable(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itemsets: %w", err)
	}
	rules, err := m.store.GetRules(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}

	return NewDocument(run, table, rules), nil
}

// NewDocument converts a run and its results to a Document.
func NewDocument(run *store.Run, table *apriori.Table, rules []apriori.Rule) *Document {
	doc := &Document{
		ExportedAt: time.Now().UTC(),
		Run: RunInfo{
			ID:            run.ID,
			CreatedAt:     run.CreatedAt,
			Source:        run.Source,
			Transactions:  run.Transactions,
			DistinctItems: run.DistinctItems,
			MinSupport:    run.MinSupport,
			MinConfidence: run.MinConfidence,
			Strategy:      run.Strategy,
		},
		Itemsets: make([]ItemsetEntry, 0, table.Len()),
		Rules:    make([]RuleEntry, 0, len(rules)),
	}

	for _, fi := range table.Itemsets() {
		doc.Itemsets = append(doc.Itemsets, ItemsetEntry{
			Items:   fi.Items,
			Support: fi.Support,
			Ratio:   table.SupportRatio(fi.Support),
		})
	}
	for _, r := range rules {
		doc.Rules = append(doc.Rules, RuleEntry{
			Antecedent: r.Antecedent,
			Consequent: r.Consequent,
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		})
	}
	return doc
}

// Export writes a run to {reportDir}/run-<id>-<timestamp>.json and returns
// the file path.
func (m *Manager) Export(runID int64) (string, error) {
	doc, err := m.Build(runID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(m.reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	filename := fmt.Sprintf("run-%d-%s.json", runID, doc.ExportedAt.Format("20060102-150405"))
	path := filepath.Join(m.reportDir, filename)

	if err := Write(path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// Write encodes doc as indented JSON to path.
func Write(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
