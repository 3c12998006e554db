// Package apriori mines frequent itemsets from transactions and derives
// association rules from them using the level-wise Apriori algorithm.
//
// A Miner holds one dataset and one pair of thresholds. Mine builds a fresh
// Miner per call and is the usual entry point:
//
//	res, err := apriori.Mine(transactions, apriori.Config{
//		MinSupport:    0.5,
//		MinConfidence: 0.6,
//	})
//	if err != nil {
//		return err
//	}
//	for _, r := range res.Rules {
//		fmt.Println(r)
//	}
package apriori

import (
	"fmt"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

// LevelStats describes one completed level of the search.
type LevelStats struct {
	Size       int // itemset size k
	Candidates int // candidates counted at this level
	Frequent   int // candidates that met the support threshold
}

// Option customises a Miner.
type Option func(*Miner)

// WithStrategy selects the candidate generation strategy.
func WithStrategy(s Strategy) Option {
	return func(m *Miner) {
		m.strategy = s
	}
}

// WithMaxLength stops the search after itemsets of size n. Zero means no
// limit.
func WithMaxLength(n int) Option {
	return func(m *Miner) {
		m.maxLength = n
	}
}

// WithLevelHook registers fn to be called after each level is counted.
func WithLevelHook(fn func(LevelStats)) Option {
	return func(m *Miner) {
		m.onLevel = fn
	}
}

// WithLogger sets the logger used for per-level debug output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Miner) {
		m.log = log
	}
}

// Miner finds frequent itemsets and association rules in a loaded dataset.
// It is safe for concurrent use; Load replaces the dataset atomically with
// respect to the Find methods.
type Miner struct {
	cfg       Config
	strategy  Strategy
	maxLength int
	onLevel   func(LevelStats)
	log       logrus.FieldLogger

	mu           sync.RWMutex
	transactions []mapset.Set[string]
	universe     []string
}

// New creates a Miner with the given thresholds.
func New(cfg Config, opts ...Option) (*Miner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Miner{
		cfg:      cfg,
		strategy: StrategyApriori,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if _, err := ParseStrategy(string(m.strategy)); err != nil {
		return nil, err
	}
	if m.maxLength < 0 {
		return nil, fmt.Errorf("%w: max length %d must not be negative", ErrInvalidConfiguration, m.maxLength)
	}
	return m, nil
}

// Load replaces the working dataset. Duplicate items within a transaction
// collapse to one. An empty dataset is valid; an empty item label is not.
func (m *Miner) Load(transactions [][]string) error {
	sets := make([]mapset.Set[string], 0, len(transactions))
	universe := mapset.NewThreadUnsafeSet[string]()
	for i, tx := range transactions {
		set := mapset.NewThreadUnsafeSet[string]()
		for _, item := range tx {
			if item == "" {
				return fmt.Errorf("%w: transaction %d contains an empty item label", ErrInvalidInput, i)
			}
			set.Add(item)
			universe.Add(item)
		}
		sets = append(sets, set)
	}

	items := universe.ToSlice()
	sort.Strings(items)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = sets
	m.universe = items
	return nil
}

// Transactions returns the number of loaded transactions.
func (m *Miner) Transactions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

// Items returns the sorted distinct items of the loaded dataset.
func (m *Miner) Items() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.universe))
	copy(out, m.universe)
	return out
}

// FindFrequentItemsets returns every itemset whose support count is at
// least MinSupport × the number of transactions. An empty dataset yields an
// empty table.
func (m *Miner) FindFrequentItemsets() (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.transactions)
	table := newTable(n)
	if n == 0 {
		return table, nil
	}
	minCount := MinCount(m.cfg.MinSupport, n)

	var previous []Itemset
	for k := 1; m.maxLength == 0 || k <= m.maxLength; k++ {
		candidates := m.candidates(k, previous, table)
		if len(candidates) == 0 {
			break
		}

		counts := m.count(candidates)
		var frequent []Itemset
		for i, c := range candidates {
			if counts[i] >= minCount {
				frequent = append(frequent, c)
				table.add(c, counts[i])
			}
		}

		stats := LevelStats{Size: k, Candidates: len(candidates), Frequent: len(frequent)}
		m.log.WithFields(logrus.Fields{
			"size":       stats.Size,
			"candidates": stats.Candidates,
			"frequent":   stats.Frequent,
			"min_count":  minCount,
		}).Debug("apriori level counted")
		if m.onLevel != nil {
			m.onLevel(stats)
		}

		if len(frequent) == 0 {
			break
		}
		previous = frequent
	}

	return table, nil
}

// FindAssociationRules mines the frequent itemsets with the miner's
// MinSupport and returns the rules meeting its MinConfidence.
func (m *Miner) FindAssociationRules() ([]Rule, error) {
	table, err := m.FindFrequentItemsets()
	if err != nil {
		return nil, err
	}
	return RulesFromTable(table, m.cfg.MinConfidence)
}

// count returns the support count of each candidate, in candidate order.
// Must be called with the read lock held.
func (m *Miner) count(candidates []Itemset) []int {
	counts := make([]int, len(candidates))
	for _, tx := range m.transactions {
		size := tx.Cardinality()
		for i, c := range candidates {
			if c.Len() <= size && tx.Contains(c...) {
				counts[i]++
			}
		}
	}
	return counts
}
