package analyzer

import "testing"

func TestSummarize(t *testing.T) {
	res := groceryResult(t)

	summary := Summarize(res.Table, res.Rules)

	if summary.Transactions != 5 {
		t.Errorf("expected 5 transactions, got %d", summary.Transactions)
	}
	if summary.ItemsetsBySize[1] != 4 || summary.ItemsetsBySize[2] != 4 {
		t.Errorf("unexpected itemset counts: %v", summary.ItemsetsBySize)
	}
	if summary.RulesByTier[TierStrong] != 1 {
		t.Errorf("expected 1 strong rule, got %d", summary.RulesByTier[TierStrong])
	}
	if summary.RulesByTier[TierModerate] != 7 {
		t.Errorf("expected 7 moderate rules, got %d", summary.RulesByTier[TierModerate])
	}
	if summary.RulesByTier[TierWeak] != 0 {
		t.Errorf("expected 0 weak rules, got %d", summary.RulesByTier[TierWeak])
	}

	if len(summary.TopItems) != 4 {
		t.Fatalf("expected 4 top items, got %d", len(summary.TopItems))
	}
	if summary.TopItems[len(summary.TopItems)-1].Items.String() != "{beer}" {
		t.Errorf("expected beer last, got %s", summary.TopItems[3].Items)
	}
}

func TestAnalyzerSummarize(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	runID := saveGroceryRun(t, s)
	a := New(s)

	summary, err := a.Summarize(runID)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.Transactions != 5 {
		t.Errorf("expected 5 transactions, got %d", summary.Transactions)
	}
	if summary.RulesByTier[TierStrong] != 1 {
		t.Errorf("expected 1 strong rule, got %d", summary.RulesByTier[TierStrong])
	}
}
