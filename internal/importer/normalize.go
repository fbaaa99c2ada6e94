package importer

// normalize.go converts raw spreadsheet cells into typed draft fields.
//
// Coercion is deliberately forgiving: a cell that cannot be parsed leaves the
// field absent rather than failing the row here. Missing required fields are
// discovered at validation, which is the only place a row can be rejected.

import (
	"strconv"
	"strings"
)

// Normalize applies a domain schema to one raw row and returns the populated
// fields. It never fails.
func Normalize(row RawRow, specs []FieldSpec) Fields {
	fields := make(Fields, len(specs))

	for _, spec := range specs {
		raw := row.Get(spec.Column)
		if raw == "" {
			continue
		}
		if spec.Normalizer != nil {
			raw = spec.Normalizer(raw)
			if raw == "" {
				continue
			}
		}

		switch spec.Kind {
		case KindText:
			fields[spec.name()] = Value{Kind: KindText, Text: raw}

		case KindNumber:
			if n, ok := ParseNumber(raw); ok {
				fields[spec.name()] = Value{Kind: KindNumber, Num: n}
			}

		case KindInt:
			if n, ok := ParseNumber(raw); ok {
				fields[spec.name()] = Value{Kind: KindInt, Int: int(n)}
			}

		case KindList:
			if list := SplitList(raw); len(list) > 0 {
				fields[spec.name()] = Value{Kind: KindList, List: list}
			}

		case KindEnum:
			if canonical, ok := matchEnum(raw, spec.EnumValues); ok {
				fields[spec.name()] = Value{Kind: KindEnum, Text: canonical}
			}
		}
	}

	return fields
}

// CleanCell strips common CSV artifacts from a cell value: surrounding
// whitespace, a UTF-8 BOM, and Excel formula-style quoting (="value").
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")

	// Excel exports sometimes wrap values as ="..." to force text format
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}

	return strings.TrimSpace(s)
}

// ParseNumber parses a numeric cell, accepting both "." and "," as decimal
// separators. A lone comma with no dot is treated as a decimal comma
// ("4,0" -> 4.0); commas alongside a dot or in groups of digits are treated
// as thousands separators ("1,200.50" -> 1200.5).
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")

	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SplitList splits a comma-separated cell into trimmed segments, dropping
// empty ones. An empty result means the section is absent.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// matchEnum resolves a raw cell to its canonical enum value,
// case-insensitively. Unrecognized values leave the field absent.
func matchEnum(raw string, values []string) (string, bool) {
	for _, v := range values {
		if strings.EqualFold(raw, v) {
			return v, true
		}
	}
	return "", false
}
