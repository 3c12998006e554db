package apriori

// Result holds both outputs of a mining run.
type Result struct {
	Config   Config
	Strategy Strategy
	Table    *Table
	Rules    []Rule
}

// Mine runs a complete mining pass over transactions with a fresh Miner.
func Mine(transactions [][]string, cfg Config, opts ...Option) (*Result, error) {
	m, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := m.Load(transactions); err != nil {
		return nil, err
	}

	table, err := m.FindFrequentItemsets()
	if err != nil {
		return nil, err
	}
	rules, err := RulesFromTable(table, cfg.MinConfidence)
	if err != nil {
		return nil, err
	}

	return &Result{
		Config:   cfg,
		Strategy: m.strategy,
		Table:    table,
		Rules:    rules,
	}, nil
}
