package importer

// merge.go provides the field-level building blocks domains compose their
// merge rules from. The rules are deterministic and never delete information:
// a field absent in the incoming draft leaves the existing value untouched,
// list fields are unioned rather than replaced, and numeric ranges only
// widen.

import "strings"

// MergeText returns incoming when it is non-empty, otherwise existing.
// Incoming wins on conflict; an absent (empty) incoming value keeps the
// existing one.
func MergeText(existing, incoming string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}

// MergeNumber returns incoming when present, otherwise existing.
func MergeNumber(existing, incoming *float64) *float64 {
	if incoming != nil {
		n := *incoming
		return &n
	}
	return existing
}

// UnionList unions two string lists by exact value equality, preserving the
// order of existing entries and appending previously-unseen incoming ones.
func UnionList(existing, incoming []string) []string {
	return unionList(existing, incoming, func(s string) string { return s })
}

// UnionListFold is UnionList with case-insensitive, whitespace-collapsed
// equality. Used for lists of names (brands) where casing varies between
// uploads.
func UnionListFold(existing, incoming []string) []string {
	return unionList(existing, incoming, KeyPart)
}

func unionList(existing, incoming []string, canon func(string) string) []string {
	if len(incoming) == 0 {
		return existing
	}

	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[canon(v)] = true
	}

	result := existing
	for _, v := range incoming {
		v = strings.TrimSpace(v)
		if v == "" || seen[canon(v)] {
			continue
		}
		seen[canon(v)] = true
		result = append(result, v)
	}
	return result
}

// WidenMin returns the smaller of the two values, treating nil as absent.
// Range lower bounds only move down during merge.
func WidenMin(existing, incoming *float64) *float64 {
	switch {
	case incoming == nil:
		return existing
	case existing == nil:
		n := *incoming
		return &n
	case *incoming < *existing:
		n := *incoming
		return &n
	default:
		return existing
	}
}

// WidenMax returns the larger of the two values, treating nil as absent.
// Range upper bounds only move up during merge.
func WidenMax(existing, incoming *float64) *float64 {
	switch {
	case incoming == nil:
		return existing
	case existing == nil:
		n := *incoming
		return &n
	case *incoming > *existing:
		n := *incoming
		return &n
	default:
		return existing
	}
}
