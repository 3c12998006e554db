// Package dataset reads transaction files into the [][]string form the
// miner consumes.
//
// Two layouts are supported. Text files hold one transaction per line with
// items separated by a delimiter ("bread, milk"). CSV files hold one
// transaction per record; quoted fields may contain the delimiter.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Supported formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
)

// ErrUnknownFormat is returned for a format other than text or csv.
var ErrUnknownFormat = errors.New("unknown dataset format")

// Options controls parsing.
type Options struct {
	Format    string // FormatText, FormatCSV or "" to infer from the file extension
	Separator string // item delimiter, "," when empty
	Lowercase bool   // fold item labels to lower case
	Header    bool   // csv only: skip the first record
	Aliases   map[string]string
}

// separator returns the item delimiter with Go escapes such as \t
// resolved, so a separator typed on the command line works as written.
func (o Options) separator() string {
	if o.Separator == "" {
		return ","
	}
	if sep, err := strconv.Unquote(`"` + o.Separator + `"`); err == nil && sep != "" {
		return sep
	}
	return o.Separator
}

// normalize trims, folds and aliases one label. It returns "" for a label
// that should be dropped.
func (o Options) normalize(item string) string {
	item = strings.TrimSpace(item)
	if o.Lowercase {
		item = strings.ToLower(item)
	}
	if canonical, ok := o.Aliases[item]; ok {
		item = canonical
	}
	return item
}

// ParseText reads one transaction per non-blank line. Lines starting with
// '#' are comments. Empty items are dropped; a line with no items left is
// skipped.
func ParseText(r io.Reader, opts Options) ([][]string, error) {
	sep := opts.separator()
	var transactions [][]string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if tx := collect(strings.Split(line, sep), opts); len(tx) > 0 {
			transactions = append(transactions, tx)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

// ParseCSV reads one transaction per CSV record. Records may have differing
// field counts.
func ParseCSV(r io.Reader, opts Options) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	sep := []rune(opts.separator())
	if len(sep) != 1 {
		return nil, fmt.Errorf("csv separator must be a single character, got %q", opts.Separator)
	}
	reader.Comma = sep[0]

	var transactions [][]string
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		if first && opts.Header {
			first = false
			continue
		}
		first = false
		if tx := collect(record, opts); len(tx) > 0 {
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

// NormalizeItems applies the label rules of opts to items given outside a
// dataset, such as a basket typed on the command line. Labels that
// normalize to "" are dropped.
func NormalizeItems(items []string, opts Options) []string {
	return collect(items, opts)
}

func collect(fields []string, opts Options) []string {
	tx := make([]string, 0, len(fields))
	for _, f := range fields {
		if item := opts.normalize(f); item != "" {
			tx = append(tx, item)
		}
	}
	return tx
}

// Parse dispatches on format.
func Parse(r io.Reader, format string, opts Options) ([][]string, error) {
	switch strings.ToLower(format) {
	case "", FormatText, "txt":
		return ParseText(r, opts)
	case FormatCSV:
		return ParseCSV(r, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DetectFormat returns the format for path when opts.Format is empty.
func DetectFormat(path string, opts Options) string {
	if opts.Format != "" {
		return opts.Format
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatText
}

// ReadFile opens and parses the dataset at path.
func ReadFile(path string, opts Options) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	transactions, err := Parse(f, DetectFormat(path, opts), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return transactions, nil
}

// Summary describes the shape of a dataset.
type Summary struct {
	Transactions  int
	DistinctItems int
	AvgSize       float64 // distinct items per transaction
	MaxSize       int
}

// Summarize computes a Summary. Duplicate items within a transaction count
// once.
func Summarize(transactions [][]string) Summary {
	s := Summary{Transactions: len(transactions)}
	universe := mapset.NewThreadUnsafeSet[string]()
	total := 0
	for _, tx := range transactions {
		set := mapset.NewThreadUnsafeSet[string](tx...)
		size := set.Cardinality()
		total += size
		if size > s.MaxSize {
			s.MaxSize = size
		}
		universe.Append(tx...)
	}
	s.DistinctItems = universe.Cardinality()
	if s.Transactions > 0 {
		s.AvgSize = float64(total) / float64(s.Transactions)
	}
	return s
}
