package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/basket/internal/apriori"
	"github.com/blackwell-systems/basket/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := db.CreateSchema(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func saveGroceryRun(t *testing.T, db *store.Store) int64 {
	t.Helper()
	res, err := apriori.Mine([][]string{
		{"bread", "milk"},
		{"bread", "diaper", "beer", "egg"},
		{"milk", "diaper", "beer", "cola"},
		{"bread", "milk", "diaper", "beer"},
		{"bread", "milk", "diaper", "cola"},
	}, apriori.Config{MinSupport: 0.5, MinConfidence: 0.5})
	if err != nil {
		t.Fatalf("Mine() failed: %v", err)
	}

	id, err := db.SaveRun(&store.Run{
		Source:        "groceries.txt",
		Transactions:  res.Table.Transactions(),
		DistinctItems: 6,
		MinSupport:    0.5,
		MinConfidence: 0.5,
		Strategy:      string(res.Strategy),
	}, res.Table, res.Rules)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestExport(t *testing.T) {
	db := setupTestStore(t)
	runID := saveGroceryRun(t, db)
	reportDir := filepath.Join(t.TempDir(), "reports")

	m := New(db, reportDir)
	path, err := m.Export(runID)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if filepath.Dir(path) != reportDir {
		t.Errorf("expected report in %s, got %s", reportDir, path)
	}
	if !strings.HasPrefix(filepath.Base(path), "run-1-") || filepath.Ext(path) != ".json" {
		t.Errorf("unexpected report filename: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Failed to parse report: %v", err)
	}

	if doc.Run.Source != "groceries.txt" {
		t.Errorf("expected source groceries.txt, got %s", doc.Run.Source)
	}
	if len(doc.Itemsets) != 8 {
		t.Errorf("expected 8 itemsets, got %d", len(doc.Itemsets))
	}
	if len(doc.Rules) != 8 {
		t.Errorf("expected 8 rules, got %d", len(doc.Rules))
	}
	if doc.Rules[0].Antecedent[0] != "beer" || doc.Rules[0].Confidence != 1.0 {
		t.Errorf("unexpected first rule: %+v", doc.Rules[0])
	}
	if doc.Itemsets[0].Ratio != 0.6 {
		t.Errorf("expected first itemset ratio 0.6, got %v", doc.Itemsets[0].Ratio)
	}
}

func TestExport_UnknownRun(t *testing.T) {
	db := setupTestStore(t)
	m := New(db, t.TempDir())

	if _, err := m.Export(42); !errors.Is(err, store.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestImport_RoundTrip(t *testing.T) {
	db := setupTestStore(t)
	runID := saveGroceryRun(t, db)

	m := New(db, t.TempDir())
	path, err := m.Export(runID)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	newID, err := m.Import(path)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if newID == runID {
		t.Error("expected import to create a new run")
	}

	original, _ := db.GetRules(runID)
	imported, err := db.GetRules(newID)
	if err != nil {
		t.Fatalf("GetRules failed: %v", err)
	}
	if len(imported) != len(original) {
		t.Fatalf("expected %d rules, got %d", len(original), len(imported))
	}
	for i := range original {
		if imported[i].String() != original[i].String() {
			t.Errorf("rule %d: got %s, want %s", i+1, imported[i], original[i])
		}
	}

	table, err := db.GetTable(newID)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}
	if support, ok := table.Support("beer", "diaper"); !ok || support != 3 {
		t.Errorf("expected {beer, diaper} support 3, got %d (%v)", support, ok)
	}
}

func TestImport_InconsistentDocument(t *testing.T) {
	db := setupTestStore(t)
	path := filepath.Join(t.TempDir(), "bad.json")

	doc := &Document{
		Run:      RunInfo{Transactions: 2},
		Itemsets: []ItemsetEntry{{Items: []string{"a", "b"}, Support: 1}},
		Rules:    []RuleEntry{{Antecedent: []string{"a"}, Consequent: []string{"b"}, Support: 1, Confidence: 1}},
	}
	if err := Write(path, doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	_, err := New(db, "").Import(path)
	if !errors.Is(err, apriori.ErrInternalConsistency) {
		t.Errorf("expected ErrInternalConsistency, got %v", err)
	}
}

func TestValidate_MissingConsequent(t *testing.T) {
	doc := &Document{
		Run: RunInfo{Transactions: 4},
		Itemsets: []ItemsetEntry{
			{Items: []string{"a"}, Support: 3},
			{Items: []string{"a", "b"}, Support: 2},
		},
		Rules: []RuleEntry{{Antecedent: []string{"a"}, Consequent: []string{"b"}, Support: 2, Confidence: 0.67}},
	}

	err := doc.Validate()
	if !errors.Is(err, apriori.ErrInternalConsistency) {
		t.Fatalf("expected ErrInternalConsistency, got %v", err)
	}
	if !strings.Contains(err.Error(), "consequent {b}") {
		t.Errorf("expected consequent in error, got %v", err)
	}
}

func TestValidate_ZeroTransactions(t *testing.T) {
	doc := &Document{
		Run:      RunInfo{Transactions: 0},
		Itemsets: []ItemsetEntry{{Items: []string{"a"}, Support: 1}},
	}
	if err := doc.Validate(); !errors.Is(err, apriori.ErrInternalConsistency) {
		t.Errorf("expected ErrInternalConsistency, got %v", err)
	}

	empty := &Document{Run: RunInfo{Transactions: 0}}
	if err := empty.Validate(); err != nil {
		t.Errorf("empty document should validate, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "garbage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed file")
	}
}
