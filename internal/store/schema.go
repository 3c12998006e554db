package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL,
    source TEXT,
    transactions INTEGER NOT NULL,
    distinct_items INTEGER NOT NULL,
    min_support REAL NOT NULL,
    min_confidence REAL NOT NULL,
    strategy TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_itemsets (
    run_id INTEGER NOT NULL,
    items TEXT NOT NULL,
    size INTEGER NOT NULL,
    support INTEGER NOT NULL,
    PRIMARY KEY (run_id, items),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_rules (
    run_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    antecedent TEXT NOT NULL,
    consequent TEXT NOT NULL,
    support INTEGER NOT NULL,
    confidence REAL NOT NULL,
    lift REAL NOT NULL,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_itemsets_run ON run_itemsets(run_id, size);
CREATE INDEX IF NOT EXISTS idx_rules_run ON run_rules(run_id);
`
