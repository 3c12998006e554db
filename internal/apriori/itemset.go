package apriori

import (
	"sort"
	"strconv"
	"strings"
)

// Itemset is a sorted set of distinct item labels. Two itemsets built from
// the same members in any order are equal and share the same Key.
type Itemset []string

// NewItemset returns the canonical itemset for items, sorting them and
// dropping duplicates. The input slice is not modified.
func NewItemset(items ...string) Itemset {
	if len(items) == 0 {
		return Itemset{}
	}
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)

	out := sorted[:1]
	for _, item := range sorted[1:] {
		if item != out[len(out)-1] {
			out = append(out, item)
		}
	}
	return Itemset(out)
}

// Key returns the canonical map key of the itemset. Each member is written
// with its byte length in front, so labels may contain any byte.
func (s Itemset) Key() string {
	var sb strings.Builder
	for _, item := range s {
		sb.WriteString(strconv.Itoa(len(item)))
		sb.WriteByte(':')
		sb.WriteString(item)
	}
	return sb.String()
}

// Len returns the number of items.
func (s Itemset) Len() int {
	return len(s)
}

// String renders the itemset as {a, b, c}.
func (s Itemset) String() string {
	return "{" + strings.Join(s, ", ") + "}"
}

// Contains reports whether item is a member of the itemset.
func (s Itemset) Contains(item string) bool {
	i := sort.SearchStrings(s, item)
	return i < len(s) && s[i] == item
}

// IsSubsetOf reports whether every member of s is a member of other.
// Both itemsets must be canonical.
func (s Itemset) IsSubsetOf(other Itemset) bool {
	if len(s) > len(other) {
		return false
	}
	j := 0
	for _, item := range s {
		for j < len(other) && other[j] < item {
			j++
		}
		if j == len(other) || other[j] != item {
			return false
		}
		j++
	}
	return true
}

// Minus returns the members of s that are not in other, in order.
func (s Itemset) Minus(other Itemset) Itemset {
	out := make(Itemset, 0, len(s))
	for _, item := range s {
		if !other.Contains(item) {
			out = append(out, item)
		}
	}
	return out
}

// Equal reports whether both itemsets have the same members.
func (s Itemset) Equal(other Itemset) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// less orders itemsets by size, then lexicographically by member.
func (s Itemset) less(other Itemset) bool {
	if len(s) != len(other) {
		return len(s) < len(other)
	}
	for i := range s {
		if s[i] != other[i] {
			return s[i] < other[i]
		}
	}
	return false
}

// combinations calls fn with every size-k subset of items in
// lexicographic index order. The slice passed to fn is reused between
// calls; fn must copy it to retain it.
func combinations(items []string, k int, fn func(Itemset) error) error {
	n := len(items)
	if k <= 0 || k > n {
		return nil
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	buf := make(Itemset, k)
	for {
		for i, j := range idx {
			buf[i] = items[j]
		}
		if err := fn(buf); err != nil {
			return err
		}

		// Advance the rightmost index that still has room.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
