package parser

import (
	"regexp"
	"strconv"
)

// Leading integer of a sequence label, e.g. "12", " 7", "31*" or "-3".
var leadingIntPattern = regexp.MustCompile(`^\s*([+-]?\d+)`)

// parseNumber reads the leading integer of a sequence label. It returns nil
// when the label does not start with digits or overflows an int.
func parseNumber(s string) *int {
	m := leadingIntPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// uniqueBy returns the distinct keys of items in first-occurrence order.
// The result is never nil.
func uniqueBy[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
