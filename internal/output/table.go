// Package output provides terminal output utilities for basket.
//
// This package includes:
//   - Table rendering for frequent itemsets, rules, saved runs and recommendations
//   - A one-line run summary with per-tier rule counts
//   - Progress bars and spinners for long-running operations
//
// Tables are plain text with ANSI colors for rule strength, which are only
// emitted when stdout is a terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/basket/internal/analyzer"
	"github.com/blackwell-systems/basket/internal/apriori"
	"github.com/blackwell-systems/basket/internal/store"
)

// ANSI color codes for rule strength display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderItemsetTable renders the frequent itemsets of a table, smallest
// first and lexicographic within a size.
func RenderItemsetTable(table *apriori.Table) string {
	if table.Len() == 0 {
		return "No frequent itemsets found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-40s %-5s %-10s %s\n",
		"Itemset", "Size", "Support", "Ratio"))
	sb.WriteString(strings.Repeat("─", 66))
	sb.WriteString("\n")

	for _, fi := range table.Itemsets() {
		sb.WriteString(fmt.Sprintf("%-40s %-5d %-10s %s\n",
			truncate(fi.Items.String(), 40),
			fi.Items.Len(),
			humanize.Comma(int64(fi.Support)),
			formatPercent(table.SupportRatio(fi.Support))))
	}

	return sb.String()
}

// RenderRuleTable renders rules in the order given, numbered from 1.
// Note: Does not sort - the numbers are the positions used by explain.
func RenderRuleTable(rules []apriori.Rule) string {
	if len(rules) == 0 {
		return "No association rules found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-4s %-44s %-9s %-11s %-6s %s\n",
		"#", "Rule", "Support", "Confidence", "Lift", "Strength"))
	sb.WriteString(strings.Repeat("─", 88))
	sb.WriteString("\n")

	for i, r := range rules {
		tier := analyzer.ClassifyRule(r)
		sb.WriteString(fmt.Sprintf("%-4d %-44s %-9s %-11s %-6s %s\n",
			i+1,
			truncate(formatRule(r), 44),
			humanize.Comma(int64(r.Support)),
			formatPercent(r.Confidence),
			fmt.Sprintf("%.2f", r.Lift),
			colorize(getTierColor(tier), formatTierLabel(tier))))
	}

	return sb.String()
}

// RenderRuleDetail renders the full breakdown of a scored rule.
func RenderRuleDetail(score *analyzer.RuleScore) string {
	var sb strings.Builder

	r := score.Rule
	sb.WriteString(fmt.Sprintf("Rule %d: %s\n", score.Position, formatRule(r)))
	sb.WriteString(fmt.Sprintf("Strength: %s\n", colorize(getTierColor(score.Tier), formatTier(score.Tier))))

	sb.WriteString("\nBreakdown:\n")
	sb.WriteString(fmt.Sprintf("  Support:    %-7s - %s\n", formatPercent(score.SupportRatio), score.Explanation.SupportDetail))
	sb.WriteString(fmt.Sprintf("  Confidence: %-7s - %s\n", formatPercent(r.Confidence), score.Explanation.ConfidenceDetail))
	sb.WriteString(fmt.Sprintf("  Lift:       %-7s - %s\n", fmt.Sprintf("%.2f", r.Lift), score.Explanation.LiftDetail))

	sb.WriteString("\nReason: " + score.Reason + "\n")
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	return sb.String()
}

// RenderRunTable renders saved runs, newest first. Sources are shown by
// file name.
func RenderRunTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No saved runs found.\n"
	}

	sorted := make([]*store.Run, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID > sorted[j].ID
	})

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-15s %-24s %-8s %-9s %-6s %-8s %s\n",
		"ID", "Created", "Source", "Baskets", "Itemsets", "Rules", "Support", "Confidence"))
	sb.WriteString(strings.Repeat("─", 92))
	sb.WriteString("\n")

	for _, run := range sorted {
		sb.WriteString(fmt.Sprintf("%-5d %-15s %-24s %-8s %-9s %-6s %-8s %s\n",
			run.ID,
			formatRelativeTime(run.CreatedAt),
			truncate(filepath.Base(run.Source), 24),
			humanize.Comma(int64(run.Transactions)),
			humanize.Comma(int64(run.ItemsetCount)),
			humanize.Comma(int64(run.RuleCount)),
			formatPercent(run.MinSupport),
			formatPercent(run.MinConfidence)))
	}

	return sb.String()
}

// RenderRecommendationTable renders recommendations in the order given.
func RenderRecommendationTable(recs []analyzer.Recommendation) string {
	if len(recs) == 0 {
		return "No recommendations for this basket.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-20s %-11s %-6s %-6s %s\n",
		"Item", "Confidence", "Lift", "Rules", "Because"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, rec := range recs {
		sb.WriteString(fmt.Sprintf("%-20s %-11s %-6s %-6d %s\n",
			truncate(rec.Item, 20),
			formatPercent(rec.Confidence),
			fmt.Sprintf("%.2f", rec.Lift),
			rec.RuleCount,
			truncate(rec.Rule.Antecedent.String(), 40)))
	}

	return sb.String()
}

// RenderSummary renders a one-line overview of a run.
// Format: "5 baskets · 8 itemsets (1: 4, 2: 4) · STRONG: 1 · MODERATE: 7 · WEAK: 0"
func RenderSummary(summary *analyzer.Summary) string {
	var sb strings.Builder

	sizes := make([]int, 0, len(summary.ItemsetsBySize))
	total := 0
	for size, count := range summary.ItemsetsBySize {
		sizes = append(sizes, size)
		total += count
	}
	sort.Ints(sizes)

	sb.WriteString(fmt.Sprintf("%s baskets · %s itemsets",
		humanize.Comma(int64(summary.Transactions)), humanize.Comma(int64(total))))
	if len(sizes) > 0 {
		parts := make([]string, len(sizes))
		for i, size := range sizes {
			parts[i] = fmt.Sprintf("%d: %d", size, summary.ItemsetsBySize[size])
		}
		sb.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}

	for _, tier := range []string{analyzer.TierStrong, analyzer.TierModerate, analyzer.TierWeak} {
		sb.WriteString(" · ")
		sb.WriteString(colorize(getTierColor(tier), formatTier(tier)))
		sb.WriteString(fmt.Sprintf(": %d", summary.RulesByTier[tier]))
	}

	return sb.String()
}

// formatRule renders a rule without its confidence suffix.
func formatRule(r apriori.Rule) string {
	return r.Antecedent.String() + " => " + r.Consequent.String()
}

// formatPercent renders a ratio as a percentage with one decimal.
func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// formatTier returns a display string for a strength tier.
func formatTier(tier string) string {
	return strings.ToUpper(tier)
}

// formatTierLabel returns the display label for a tier in the rule table.
func formatTierLabel(tier string) string {
	switch strings.ToLower(tier) {
	case analyzer.TierStrong:
		return "✓ strong"
	case analyzer.TierModerate:
		return "~ moderate"
	default:
		return "⚠ weak"
	}
}

// getTierColor returns the ANSI color code for a strength tier.
func getTierColor(tier string) string {
	switch strings.ToLower(tier) {
	case analyzer.TierStrong:
		return colorGreen
	case analyzer.TierModerate:
		return colorYellow
	case analyzer.TierWeak:
		return colorRed
	default:
		return colorGray
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
