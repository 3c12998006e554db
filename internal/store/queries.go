package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/basket/internal/apriori"
)

// Run operations

// SaveRun stores a run with its frequent itemsets and rules in a single
// transaction and returns the new run id. run.ID and run.CreatedAt are set
// on success; a zero CreatedAt is replaced with the current time.
func (s *Store) SaveRun(run *Run, table *apriori.Table, rules []apriori.Rule) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO runs
		(created_at, source, transactions, distinct_items, min_support, min_confidence, strategy)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.CreatedAt.Format(time.RFC3339),
		run.Source,
		run.Transactions,
		run.DistinctItems,
		run.MinSupport,
		run.MinConfidence,
		run.Strategy,
	)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, wrapQueryErr(err, "failed to insert run")
	}

	id, err := result.LastInsertId()
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	if err := insertItemsets(tx, id, table.Itemsets()); err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, err
	}
	if err := insertRules(tx, id, rules); err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = id
	run.ItemsetCount = table.Len()
	run.RuleCount = len(rules)
	return id, nil
}

func insertItemsets(tx *sql.Tx, runID int64, itemsets []apriori.FrequentItemset) error {
	stmt, err := tx.Prepare(`INSERT INTO run_itemsets (run_id, items, size, support) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare itemset insert: %w", err)
	}
	defer stmt.Close()

	for _, fi := range itemsets {
		itemsJSON, err := json.Marshal([]string(fi.Items))
		if err != nil {
			return fmt.Errorf("failed to marshal itemset %s: %w", fi.Items, err)
		}
		if _, err := stmt.Exec(runID, string(itemsJSON), fi.Items.Len(), fi.Support); err != nil {
			return fmt.Errorf("failed to insert itemset %s: %w", fi.Items, err)
		}
	}
	return nil
}

func insertRules(tx *sql.Tx, runID int64, rules []apriori.Rule) error {
	stmt, err := tx.Prepare(`
		INSERT INTO run_rules (run_id, position, antecedent, consequent, support, confidence, lift)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare rule insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rules {
		anteJSON, err := json.Marshal([]string(r.Antecedent))
		if err != nil {
			return fmt.Errorf("failed to marshal antecedent of rule %d: %w", i+1, err)
		}
		consJSON, err := json.Marshal([]string(r.Consequent))
		if err != nil {
			return fmt.Errorf("failed to marshal consequent of rule %d: %w", i+1, err)
		}
		if _, err := stmt.Exec(runID, i+1, string(anteJSON), string(consJSON), r.Support, r.Confidence, r.Lift); err != nil {
			return fmt.Errorf("failed to insert rule %d: %w", i+1, err)
		}
	}
	return nil
}

const runColumns = `
	r.id, r.created_at, r.source, r.transactions, r.distinct_items,
	r.min_support, r.min_confidence, r.strategy,
	(SELECT COUNT(*) FROM run_itemsets i WHERE i.run_id = r.id),
	(SELECT COUNT(*) FROM run_rules x WHERE x.run_id = r.id)
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var createdAt string
	var source sql.NullString

	err := row.Scan(
		&run.ID,
		&createdAt,
		&source,
		&run.Transactions,
		&run.DistinctItems,
		&run.MinSupport,
		&run.MinConfidence,
		&run.Strategy,
		&run.ItemsetCount,
		&run.RuleCount,
	)
	if err != nil {
		return nil, err
	}

	run.Source = source.String
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for run %d: %w", run.ID, err)
	}
	return &run, nil
}

// GetRun retrieves a run by id.
func (s *Store) GetRun(id int64) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs r WHERE r.id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, wrapQueryErr(err, "failed to get run %d", id)
	}
	return run, nil
}

// LatestRun returns the most recently saved run.
func (s *Store) LatestRun() (*Run, error) {
	row := s.db.QueryRow(`SELECT ` + runColumns + ` FROM runs r ORDER BY r.id DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no saved runs: %w", ErrRunNotFound)
	}
	if err != nil {
		return nil, wrapQueryErr(err, "failed to get latest run")
	}
	return run, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(`SELECT ` + runColumns + ` FROM runs r ORDER BY r.id DESC`)
	if err != nil {
		return nil, wrapQueryErr(err, "failed to list runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run together with its itemsets and rules.
func (s *Store) DeleteRun(id int64) error {
	result, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return wrapQueryErr(err, "failed to delete run %d", id)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}

	return nil
}

// Itemset and rule operations

// GetTable rebuilds the frequent-itemset table of a run.
func (s *Store) GetTable(runID int64) (*apriori.Table, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT items, support FROM run_itemsets WHERE run_id = ?`, runID)
	if err != nil {
		return nil, wrapQueryErr(err, "failed to get itemsets for run %d", runID)
	}
	defer rows.Close()

	var itemsets []apriori.FrequentItemset
	for rows.Next() {
		var itemsJSON string
		var support int
		if err := rows.Scan(&itemsJSON, &support); err != nil {
			return nil, fmt.Errorf("failed to scan itemset row: %w", err)
		}

		var items []string
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal itemset for run %d: %w", runID, err)
		}
		itemsets = append(itemsets, apriori.FrequentItemset{Items: items, Support: support})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating itemsets: %w", err)
	}

	return apriori.NewTable(run.Transactions, itemsets), nil
}

// GetRules returns the rules of a run in the order they were mined.
func (s *Store) GetRules(runID int64) ([]apriori.Rule, error) {
	if _, err := s.GetRun(runID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT antecedent, consequent, support, confidence, lift
		FROM run_rules
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, wrapQueryErr(err, "failed to get rules for run %d", runID)
	}
	defer rows.Close()

	rules := []apriori.Rule{}
	for rows.Next() {
		var anteJSON, consJSON string
		var r apriori.Rule
		if err := rows.Scan(&anteJSON, &consJSON, &r.Support, &r.Confidence, &r.Lift); err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}

		var ante, cons []string
		if err := json.Unmarshal([]byte(anteJSON), &ante); err != nil {
			return nil, fmt.Errorf("failed to unmarshal antecedent for run %d: %w", runID, err)
		}
		if err := json.Unmarshal([]byte(consJSON), &cons); err != nil {
			return nil, fmt.Errorf("failed to unmarshal consequent for run %d: %w", runID, err)
		}
		r.Antecedent = apriori.NewItemset(ante...)
		r.Consequent = apriori.NewItemset(cons...)
		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}

	return rules, nil
}
