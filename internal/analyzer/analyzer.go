package analyzer

import "github.com/blackwell-systems/basket/internal/store"

// Analyzer scores, explains and applies the rules of saved mining runs.
type Analyzer struct {
	store *store.Store
}

// New creates a new Analyzer instance with the given store.
func New(store *store.Store) *Analyzer {
	return &Analyzer{store: store}
}
