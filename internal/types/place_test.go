package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPlaceType(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected PlaceType
	}{
		{"exact enum value", "tourism", PlaceTypeTourism},
		{"exact value with casing and spaces", "  Lodging ", PlaceTypeLodging},
		{"spanish hotel keyword", "hotel boutique", PlaceTypeLodging},
		{"accented keyword", "cafetería", PlaceTypeBreakfast},
		{"tourism keyword", "museo de arte", PlaceTypeTourism},
		{"shopping keyword", "centro comercial chipichape", PlaceTypeShopping},
		{"entertainment keyword", "discoteca salsera", PlaceTypeEntertainment},
		{"food keyword", "restaurante de mariscos", PlaceTypeFood},
		{"lodging beats food on overlap", "hotel restaurante", PlaceTypeLodging},
		{"breakfast beats food on overlap", "cafe y almuerzo", PlaceTypeBreakfast},
		{"unknown falls back to food", "cosas raras", PlaceTypeFood},
		{"empty falls back to food", "", PlaceTypeFood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalPlaceType(tt.raw))
		})
	}
}

func TestCanonicalPlaceType_Idempotent(t *testing.T) {
	inputs := []string{"hotel boutique", "museo", "zzz", "tourism", ""}
	for _, raw := range inputs {
		once := CanonicalPlaceType(raw)
		assert.Equal(t, once, CanonicalPlaceType(string(once)), "input %q", raw)
	}
}

func TestIsValidPlaceType(t *testing.T) {
	assert.True(t, IsValidPlaceType(PlaceTypeFood))
	assert.True(t, IsValidPlaceType(PlaceTypeLodging))
	assert.False(t, IsValidPlaceType("museum"))
	assert.False(t, IsValidPlaceType(""))
}
