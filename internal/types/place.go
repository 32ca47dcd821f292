package types

import "strings"

// PlaceType is the closed set of place categories used across the API.
type PlaceType string

const (
	PlaceTypeLodging       PlaceType = "lodging"
	PlaceTypeBreakfast     PlaceType = "breakfast"
	PlaceTypeTourism       PlaceType = "tourism"
	PlaceTypeShopping      PlaceType = "shopping"
	PlaceTypeEntertainment PlaceType = "entertainment"
	PlaceTypeFood          PlaceType = "food"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Place struct {
	ID          string    `json:"id,omitempty"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Type        PlaceType `json:"type"`
	Location    Location  `json:"location"`
}

// PlaceFilter represents filters for place queries.
type PlaceFilter struct {
	Type  PlaceType `json:"type,omitempty"`
	Limit int       `json:"limit,omitempty"`
}

type CreatePlaceRequest struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Type        string   `json:"type"`
	Location    Location `json:"location"`
}

// Keyword lists checked in priority order by CanonicalPlaceType. Lodging is
// tested first and food last so that e.g. "hotel restaurante" stays lodging.
var placeTypeKeywords = []struct {
	placeType PlaceType
	keywords  []string
}{
	{PlaceTypeLodging, []string{"hotel", "hostal", "hospedaje", "alojamiento", "posada", "motel", "lodging", "hostel"}},
	{PlaceTypeBreakfast, []string{"desayuno", "cafe", "cafeteria", "panaderia", "brunch", "breakfast", "bakery"}},
	{PlaceTypeTourism, []string{"turismo", "turistico", "museo", "parque", "iglesia", "monumento", "mirador", "tour", "museum", "park", "church", "sightseeing"}},
	{PlaceTypeShopping, []string{"compra", "tienda", "centro comercial", "mercado", "mall", "shopping", "store", "market"}},
	{PlaceTypeEntertainment, []string{"entretenimiento", "bar", "discoteca", "cine", "teatro", "rumba", "entertainment", "club", "cinema", "theater"}},
	{PlaceTypeFood, []string{"comida", "restaurante", "almuerzo", "cena", "gastronomia", "food", "restaurant", "lunch", "dinner"}},
}

var diacriticReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"à", "a", "è", "e", "ì", "i", "ò", "o", "ù", "u",
	"â", "a", "ê", "e", "ô", "o", "ã", "a", "õ", "o",
	"ü", "u", "ñ", "n", "ç", "c",
)

// CanonicalPlaceType maps free-text type strings onto the PlaceType enum.
// Exact matches win, then keyword containment in priority order. Anything
// unrecognized (including empty input) falls into the food category.
func CanonicalPlaceType(raw string) PlaceType {
	normalized := diacriticReplacer.Replace(strings.ToLower(strings.TrimSpace(raw)))
	if normalized == "" {
		return PlaceTypeFood
	}

	switch PlaceType(normalized) {
	case PlaceTypeLodging, PlaceTypeBreakfast, PlaceTypeTourism,
		PlaceTypeShopping, PlaceTypeEntertainment, PlaceTypeFood:
		return PlaceType(normalized)
	}

	for _, entry := range placeTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.placeType
			}
		}
	}
	return PlaceTypeFood
}

// IsValidPlaceType reports whether t is a member of the canonical enum.
func IsValidPlaceType(t PlaceType) bool {
	switch t {
	case PlaceTypeLodging, PlaceTypeBreakfast, PlaceTypeTourism,
		PlaceTypeShopping, PlaceTypeEntertainment, PlaceTypeFood:
		return true
	}
	return false
}
