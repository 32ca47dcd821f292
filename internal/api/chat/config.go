package chat

import "github.com/descubre-app/descubre-api/internal/types"

// EngineConfig carries the immutable seed data the engine falls back on when
// the generative backend and the place inventory are both unavailable. It is
// injected at construction so tests can substitute alternate seed sets.
type EngineConfig struct {
	CityName           string
	DefaultLocation    types.Location
	SeedPlaces         []types.Place
	MaxRecommendations int
	CandidateLimit     int
}

// DefaultEngineConfig returns the production seed set for Cali, Colombia.
func DefaultEngineConfig() EngineConfig {
	caliCenter := types.Location{Lat: 3.4516, Lng: -76.5320}
	return EngineConfig{
		CityName:           "Cali",
		DefaultLocation:    caliCenter,
		MaxRecommendations: 4,
		CandidateLimit:     20,
		SeedPlaces: []types.Place{
			{
				Key:         "cristo-rey",
				Name:        "Cristo Rey",
				Description: "Monumento emblemático con vista panorámica de la ciudad.",
				Address:     "Cerro de los Cristales, Cali",
				Type:        types.PlaceTypeTourism,
				Location:    types.Location{Lat: 3.4372, Lng: -76.5635},
			},
			{
				Key:         "bulevar-del-rio",
				Name:        "Bulevar del Río",
				Description: "Paseo peatonal junto al río Cali, ideal para caminar y tomar fotos.",
				Address:     "Avenida Colombia, Cali",
				Type:        types.PlaceTypeTourism,
				Location:    types.Location{Lat: 3.4525, Lng: -76.5340},
			},
			{
				Key:         "restaurante-carambolo",
				Name:        "Restaurante Carambolo",
				Description: "Cocina de autor con ingredientes del Pacífico colombiano.",
				Address:     "Calle 5 # 38-71, Cali",
				Type:        types.PlaceTypeFood,
				Location:    types.Location{Lat: 3.4204, Lng: -76.5472},
			},
		},
	}
}
