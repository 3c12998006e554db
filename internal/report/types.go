// Package report exports saved mining runs to JSON documents and imports
// them back into a store.
package report

import (
	"time"

	"github.com/blackwell-systems/basket/internal/store"
)

// Document is the JSON structure written to report files.
type Document struct {
	ExportedAt time.Time      `json:"exported_at"`
	Run        RunInfo        `json:"run"`
	Itemsets   []ItemsetEntry `json:"itemsets"`
	Rules      []RuleEntry    `json:"rules"`
}

// RunInfo is the run metadata carried by a Document.
type RunInfo struct {
	ID            int64     `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Source        string    `json:"source"`
	Transactions  int       `json:"transactions"`
	DistinctItems int       `json:"distinct_items"`
	MinSupport    float64   `json:"min_support"`
	MinConfidence float64   `json:"min_confidence"`
	Strategy      string    `json:"strategy"`
}

// ItemsetEntry is one frequent itemset.
type ItemsetEntry struct {
	Items   []string `json:"items"`
	Support int      `json:"support"`
	Ratio   float64  `json:"ratio"`
}

// RuleEntry is one association rule, in mined order.
type RuleEntry struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Support    int      `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
}

// Manager writes and reads report files for runs in a store.
type Manager struct {
	store     *store.Store
	reportDir string
}

// New creates a new report Manager.
func New(store *store.Store, reportDir string) *Manager {
	return &Manager{
		store:     store,
		reportDir: reportDir,
	}
}
