package apriori

import "errors"

// Sentinel errors returned by the miner. Callers match them with errors.Is;
// returned errors wrap them with the offending value.
var (
	// ErrInvalidConfiguration is returned when a threshold is outside (0, 1].
	ErrInvalidConfiguration = errors.New("invalid mining configuration")

	// ErrInvalidInput is returned by Load for a malformed dataset.
	ErrInvalidInput = errors.New("invalid transaction data")

	// ErrInternalConsistency means an antecedent was missing from the
	// frequent-itemset table while deriving rules. The table is built so
	// this cannot happen; seeing it indicates a mining bug.
	ErrInternalConsistency = errors.New("frequent itemset table is inconsistent")
)
