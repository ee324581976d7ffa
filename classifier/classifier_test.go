package classifier

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		expected  PropertyType
	}{
		{
			name:      "empty reference",
			reference: "",
			expected:  Undefined,
		},
		{
			name:      "CA prefix",
			reference: "CA1024",
			expected:  House,
		},
		{
			name:      "ca prefix lowercase",
			reference: "ca1024",
			expected:  House,
		},
		{
			name:      "AP prefix",
			reference: "AP205",
			expected:  Apartment,
		},
		{
			name:      "TR prefix",
			reference: "TR33",
			expected:  Land,
		},
		{
			name:      "CO prefix",
			reference: "CO17",
			expected:  Commercial,
		},
		{
			name:      "prefix wins over embedded keyword",
			reference: "CA TERRENO GRANDE",
			expected:  House,
		},
		{
			name:      "CO prefix wins over comercial keyword",
			reference: "COBERTURA COMERCIAL",
			expected:  Commercial,
		},
		{
			name:      "wind oceanica campaign",
			reference: "Wind Oceanica",
			expected:  Launch,
		},
		{
			// TRESOR starts with TR, so the prefix rule fires before the
			// campaign set is ever consulted. Legacy rows depend on this.
			name:      "tresor camboinhas hits TR prefix first",
			reference: "TRESOR CAMBOINHAS",
			expected:  Land,
		},
		{
			name:      "casa keyword",
			reference: "linda casa no centro",
			expected:  House,
		},
		{
			name:      "apartamento keyword",
			reference: "apartamento central",
			expected:  Apartment,
		},
		{
			name:      "apt keyword",
			reference: "apt 302 icarai",
			expected:  Apartment,
		},
		{
			name:      "terreno keyword",
			reference: "terreno em pendotiba",
			expected:  Land,
		},
		{
			name:      "loja keyword",
			reference: "loja no shopping",
			expected:  Commercial,
		},
		{
			name:      "sala keyword",
			reference: "sala 1201",
			expected:  Commercial,
		},
		{
			name:      "lancamento keyword with accent",
			reference: "novo lançamento icaraí",
			expected:  Launch,
		},
		{
			name:      "lancamento keyword without accent",
			reference: "lancamento barreto",
			expected:  Launch,
		},
		{
			name:      "unclassifiable",
			reference: "XYZ123",
			expected:  Other,
		},
		{
			name:      "whitespace only",
			reference: "   ",
			expected:  Other,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.reference)
			if got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.reference, got, tt.expected)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Classify("AP205"); got != Apartment {
			t.Errorf("Classify is not deterministic: got %v on call %d", got, i)
		}
	}
}
