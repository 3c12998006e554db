package store

import "time"

// Run records one saved mining run.
type Run struct {
	ID            int64
	CreatedAt     time.Time
	Source        string // dataset path or "-" for stdin
	Transactions  int
	DistinctItems int
	MinSupport    float64
	MinConfidence float64
	Strategy      string
	ItemsetCount  int // filled by ListRuns and GetRun
	RuleCount     int // filled by ListRuns and GetRun
}
