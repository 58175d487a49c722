// Package compliance holds per-country lookup tables for entity types and
// registration identifiers, along with the display format of each identifier.
package compliance

import (
	"strings"
)

// FormatRule describes how the digits of an identifier are grouped for
// display. A zero rule leaves the value unchanged.
type FormatRule struct {
	Groups    []int  // digit group sizes, e.g. [2 3 3 3] for an ABN
	Separator string // inserted between groups
}

// IsZero reports whether the rule performs no formatting.
func (r FormatRule) IsZero() bool {
	return len(r.Groups) == 0
}

// Length returns the number of characters the rule expects.
func (r FormatRule) Length() int {
	n := 0
	for _, g := range r.Groups {
		n += g
	}
	return n
}

// Apply formats value according to the rule. Values whose significant
// characters do not match the expected length are returned as given.
func (r FormatRule) Apply(value string) string {
	if r.IsZero() {
		return value
	}

	compact := Compact(value)
	if len(compact) != r.Length() {
		return value
	}

	var b strings.Builder
	pos := 0
	for i, g := range r.Groups {
		if i > 0 {
			b.WriteString(r.Separator)
		}
		b.WriteString(compact[pos : pos+g])
		pos += g
	}

	return b.String()
}

// IdentifierType is a kind of registration number issued in a country.
type IdentifierType struct {
	Code   string
	Name   string
	Format FormatRule
}

// FormatValue formats an identifier value for display.
func (t IdentifierType) FormatValue(value string) string {
	return t.Format.Apply(value)
}

// EntityType is a legal form of entity recognised in a country.
type EntityType struct {
	Code string
	Name string
}

// Pack is the set of lookup tables for one country.
type Pack struct {
	Country         string
	Name            string
	EntityTypes     map[string]EntityType
	IdentifierTypes map[string]IdentifierType
}

// Compact keeps the ASCII letters and digits of an identifier value and
// upper-cases the letters. Registration numbers are ASCII, so anything else
// is treated as a separator and the result is safe to slice by byte.
func Compact(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'Z':
			b.WriteByte(c)
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		}
	}
	return b.String()
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// PackFor returns the pack registered for country.
func PackFor(country string) (*Pack, bool) {
	p, ok := packs[normalize(country)]
	return p, ok
}

// Countries lists the country codes with a registered pack.
func Countries() []string {
	out := make([]string, 0, len(packs))
	for _, code := range countryOrder {
		if _, ok := packs[code]; ok {
			out = append(out, code)
		}
	}
	return out
}

// Lookup finds an identifier type for a country. A miss is not an error;
// callers fall back to showing the raw code.
func Lookup(country, typeCode string) (IdentifierType, bool) {
	p, ok := PackFor(country)
	if !ok {
		return IdentifierType{}, false
	}

	t, ok := p.IdentifierTypes[normalize(typeCode)]
	return t, ok
}

// LookupEntityType finds an entity type for a country.
func LookupEntityType(country, code string) (EntityType, bool) {
	p, ok := PackFor(country)
	if !ok {
		return EntityType{}, false
	}

	t, ok := p.EntityTypes[normalize(code)]
	return t, ok
}

// Label returns the display name of an identifier type, or typeCode itself
// when no pack knows it.
func Label(country, typeCode string) string {
	if t, ok := Lookup(country, typeCode); ok {
		return t.Name
	}
	return typeCode
}

// EntityTypeLabel returns the display name of an entity type, or code itself
// when no pack knows it.
func EntityTypeLabel(country, code string) string {
	if t, ok := LookupEntityType(country, code); ok {
		return t.Name
	}
	return code
}

// FormatIdentifier formats value using the rule for typeCode, returning value
// unchanged when the type is unknown.
func FormatIdentifier(country, typeCode, value string) string {
	if t, ok := Lookup(country, typeCode); ok {
		return t.FormatValue(value)
	}
	return value
}
