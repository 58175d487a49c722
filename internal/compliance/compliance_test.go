package compliance

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	abn, ok := Lookup("au", "abn")
	require.True(t, ok)
	assert.Equal(t, "Australian Business Number", abn.Name)

	_, ok = Lookup("AU", "NOPE")
	assert.False(t, ok)

	_, ok = Lookup("ZZ", "ABN")
	assert.False(t, ok)
}

func TestLookupEntityType(t *testing.T) {
	et, ok := LookupEntityType("AU", "PTY")
	require.True(t, ok)
	assert.Equal(t, "Proprietary Limited Company", et.Name)

	_, ok = LookupEntityType("GB", "PTY")
	assert.False(t, ok)
}

func TestLabelFallsBackToRawCode(t *testing.T) {
	assert.Equal(t, "Australian Company Number", Label("AU", "ACN"))
	assert.Equal(t, "XYZ", Label("AU", "XYZ"))
	assert.Equal(t, "ABN", Label("FR", "ABN"))
	assert.Equal(t, "Public Limited Company", EntityTypeLabel("GB", "PLC"))
	assert.Equal(t, "GMBH", EntityTypeLabel("DE", "GMBH"))
}

func TestFormatIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		typeCode string
		value    string
		want     string
	}{
		{"abn compact", "AU", "ABN", "51824753556", "51 824 753 556"},
		{"abn already spaced", "AU", "ABN", "51 824 753 556", "51 824 753 556"},
		{"acn with dashes", "AU", "ACN", "004-085-616", "004 085 616"},
		{"ein", "US", "EIN", "123456789", "12-3456789"},
		{"wrong length unchanged", "AU", "ABN", "1234", "1234"},
		{"no rule unchanged", "NZ", "NZBN", "9429041234567", "9429041234567"},
		{"unknown type unchanged", "AU", "XYZ", "123", "123"},
		{"unknown country unchanged", "FR", "SIREN", "732829320", "732829320"},
		{"non-ascii dropped", "AU", "ABN", "5182475355Ä6", "51 824 753 556"},
		{"non-ascii short unchanged", "AU", "ABN", "1Ä12345678", "1Ä12345678"},
		{"non-ascii digits ignored", "AU", "ABN", "٥١٨٢٤٧٥٣٥٥٦", "٥١٨٢٤٧٥٣٥٥٦"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIdentifier(tt.country, tt.typeCode, tt.value))
		})
	}
}

func TestCountries(t *testing.T) {
	assert.Equal(t, []string{"AU", "NZ", "GB", "US", "SG"}, Countries())
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "53004085616", Compact("53 004 085 616"))
	assert.Equal(t, "T08LL1234A", Compact("t08-ll-1234a"))
}

func TestFormatIdentifierKeepsValidUTF8(t *testing.T) {
	for _, value := range []string{"1Ä12345678", "1Ä123456789", "ÄÄÄÄÄÄÄÄÄÄÄ", "51 824 753 55€"} {
		got := FormatIdentifier("AU", "ABN", value)
		assert.True(t, utf8.ValidString(got), "FormatIdentifier(%q) = %q", value, got)
	}

	assert.Equal(t, "T08LL1234A", Compact("t08-ll-1234a\u00e9"))
	assert.Equal(t, "", Compact("Äöü"))
}
