package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groceries = `
bread, milk
bread, diaper, beer, egg
milk, diaper, beer, cola
bread, milk, diaper, beer
bread, milk, diaper, cola
`

func TestParseText(t *testing.T) {
	got, err := ParseText(strings.NewReader(groceries), Options{})
	require.NoError(t, err)

	require.Len(t, got, 5)
	assert.Equal(t, []string{"bread", "milk"}, got[0])
	assert.Equal(t, []string{"bread", "diaper", "beer", "egg"}, got[1])
}

func TestParseText_SkipsCommentsAndEmptyItems(t *testing.T) {
	input := "# weekly baskets\n\n tea ,, scone , \n , \n"
	got, err := ParseText(strings.NewReader(input), Options{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"tea", "scone"}}, got)
}

func TestParseText_SeparatorLowercaseAliases(t *testing.T) {
	input := "Bread; Soda\nMILK;bread\n"
	got, err := ParseText(strings.NewReader(input), Options{
		Separator: ";",
		Lowercase: true,
		Aliases:   map[string]string{"soda": "cola"},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"bread", "cola"}, {"milk", "bread"}}, got)
}

func TestParseText_EscapedSeparator(t *testing.T) {
	input := "bread\tmilk\nbeer\tdiaper\n"
	got, err := ParseText(strings.NewReader(input), Options{Separator: `\t`})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"bread", "milk"}, {"beer", "diaper"}}, got)
}

func TestParseCSV_EscapedSeparator(t *testing.T) {
	input := "bread\t\"nuts, salted\"\n"
	got, err := ParseCSV(strings.NewReader(input), Options{Separator: `\t`})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"bread", "nuts, salted"}}, got)
}

func TestNormalizeItems(t *testing.T) {
	opts := Options{Lowercase: true, Aliases: map[string]string{"soda": "cola"}}
	got := NormalizeItems([]string{" Soda", "CHIPS", "  "}, opts)
	assert.Equal(t, []string{"cola", "chips"}, got)
}

func TestParseCSV(t *testing.T) {
	input := "item1,item2,item3\nbread,milk\n\"nuts, salted\",beer,\n# skipped\ncola\n"
	got, err := ParseCSV(strings.NewReader(input), Options{Header: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"bread", "milk"},
		{"nuts, salted", "beer"},
		{"cola"},
	}, got)
}

func TestParseCSV_BadSeparator(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("a,b"), Options{Separator: "::"})
	assert.Error(t, err)
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse(strings.NewReader("a"), "parquet", Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatCSV, DetectFormat("baskets.CSV", Options{}))
	assert.Equal(t, FormatText, DetectFormat("baskets.txt", Options{}))
	assert.Equal(t, FormatText, DetectFormat("baskets.csv", Options{Format: FormatText}))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groceries.txt")
	require.NoError(t, os.WriteFile(path, []byte(groceries), 0644))

	got, err := ReadFile(path, Options{})
	require.NoError(t, err)
	assert.Len(t, got, 5)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"), Options{})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s := Summarize([][]string{
		{"bread", "milk", "milk"},
		{"bread", "diaper", "beer", "egg"},
	})
	assert.Equal(t, 2, s.Transactions)
	assert.Equal(t, 5, s.DistinctItems)
	assert.Equal(t, 4, s.MaxSize)
	assert.InDelta(t, 3.0, s.AvgSize, 1e-9)

	empty := Summarize(nil)
	assert.Equal(t, Summary{}, empty)
}
