package analyses

import (
	"strings"

	"audiofields-backend/internal/language"
)

// Normalize trims s, lowercases it and replaces spaces with underscores.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Matches reports whether a and b are equal after normalization.
func Matches(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// FieldMatch holds the unique values matched to one spreadsheet field.
type FieldMatch struct {
	Field  string
	Values []string
}

func (m *FieldMatch) add(value string) {
	for _, v := range m.Values {
		if v == value {
			return
		}
	}
	m.Values = append(m.Values, value)
}

// FieldMatches is ordered like the spreadsheet header it was built from.
type FieldMatches []FieldMatch

// Total is the number of values across all fields.
func (fm FieldMatches) Total() int {
	n := 0
	for _, m := range fm {
		n += len(m.Values)
	}
	return n
}

// MatchEntities maps entity analysis output onto fields. An entity whose type
// matches a field contributes its name; each mention whose type matches a
// field contributes its text. Matching is on category labels only, so a
// PERSON entity never lands in a "Name" column.
func MatchEntities(resp language.Response, fields []string) FieldMatches {
	out := make(FieldMatches, len(fields))
	for i, field := range fields {
		out[i] = FieldMatch{Field: field, Values: []string{}}
	}

	for _, entity := range resp.Entities {
		for i, field := range fields {
			if Matches(entity.Type, field) {
				out[i].add(entity.Name)
			}
		}
		for _, mention := range entity.Mentions {
			for i, field := range fields {
				if Matches(mention.Type, field) {
					out[i].add(mention.Text.Content)
				}
			}
		}
	}
	return out
}
