package chat

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/descubre-app/descubre-api/app/observability/metrics"
	"github.com/descubre-app/descubre-api/internal/types"
)

const (
	sentinelPlaceName  = "Lugar por definir"
	defaultDescription = "Descripción no disponible"
	defaultAddress     = "Dirección no disponible"

	// The two failure placeholders must stay distinguishable: not-found
	// means the catalog has no such place, unavailable means the lookup
	// itself failed.
	notFoundPlaceName      = "Lugar no encontrado"
	notFoundDescription    = "El lugar referenciado no se encontró en el catálogo."
	unavailablePlaceName   = "Lugar no disponible"
	unavailableDescription = "No fue posible consultar el lugar referenciado."
)

// PlaceResolver resolves a place reference. A nil place with a nil error
// means the reference does not exist.
type PlaceResolver interface {
	GetPlace(ctx context.Context, id string) (*types.Place, error)
}

// NormalizePlace repairs a raw place into the canonical shape: name/key
// cross-fill, defaulted description and address, validated coordinates, and
// a canonical type. It is idempotent and never performs lookups.
func NormalizePlace(p types.Place, defaultLocation types.Location) types.Place {
	switch {
	case p.Name == "" && p.Key == "":
		p.Name = sentinelPlaceName
		p.Key = sentinelPlaceName
	case p.Name == "":
		p.Name = p.Key
	case p.Key == "":
		p.Key = p.Name
	}

	if p.Description == "" {
		p.Description = defaultDescription
	}
	if p.Address == "" {
		p.Address = defaultAddress
	}

	if !validCoordinates(p.Location) {
		p.Location = defaultLocation
	}

	p.Type = types.CanonicalPlaceType(string(p.Type))
	return p
}

func validCoordinates(loc types.Location) bool {
	if math.IsNaN(loc.Lat) || math.IsNaN(loc.Lng) || math.IsInf(loc.Lat, 0) || math.IsInf(loc.Lng, 0) {
		return false
	}
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
		return false
	}
	// The zero pair is the marshaling artifact of an absent location.
	if loc.Lat == 0 && loc.Lng == 0 {
		return false
	}
	return true
}

// ResponseNormalizer walks a synthesized response, resolving place
// references through the place lookup and repairing every leaf place plus
// the plan's structural invariants.
type ResponseNormalizer struct {
	cfg    EngineConfig
	places PlaceResolver
	logger *slog.Logger
}

func NewResponseNormalizer(cfg EngineConfig, places PlaceResolver, logger *slog.Logger) *ResponseNormalizer {
	return &ResponseNormalizer{
		cfg:    cfg,
		places: places,
		logger: logger,
	}
}

// Normalize returns a normalized copy of the response; the input is never
// mutated. Reference lookups are dispatched concurrently (one per activity)
// and joined before returning, preserving activity and day order. Defaults
// filled in for missing fields follow the caller's detected language.
func (n *ResponseNormalizer) Normalize(ctx context.Context, response types.ChatResponse, lang Language, resolveReferences bool) types.ChatResponse {
	out := response

	if response.Places != nil {
		normalized := make([]types.Place, len(response.Places))
		for i, p := range response.Places {
			normalized[i] = NormalizePlace(p, n.cfg.DefaultLocation)
		}
		out.Places = normalized
	}

	if response.TravelPlan != nil {
		plan := n.normalizeTravelPlan(ctx, *response.TravelPlan, lang, resolveReferences)
		out.TravelPlan = &plan
	}

	return out
}

func (n *ResponseNormalizer) normalizeTravelPlan(ctx context.Context, plan types.TravelPlan, lang Language, resolveReferences bool) types.TravelPlan {
	days := make([]types.Day, len(plan.Days))

	g, gctx := errgroup.WithContext(ctx)
	for i, day := range plan.Days {
		d := day
		d.DayNumber = i + 1
		if d.Title == "" {
			d.Title = defaultDayTitle(lang, i+1)
		}

		activities := make([]types.Activity, len(day.Activities))
		for j, activity := range day.Activities {
			j, activity := j, activity
			g.Go(func() error {
				activities[j] = n.normalizeActivity(gctx, activity, resolveReferences)
				return nil
			})
		}
		d.Activities = activities
		days[i] = d
	}
	// Resolution goroutines convert their own failures into placeholders.
	_ = g.Wait()

	plan.Days = days
	if plan.TotalDays != len(days) {
		plan.TotalDays = len(days)
	}
	return plan
}

func defaultDayTitle(lang Language, day int) string {
	switch lang {
	case LanguagePortuguese:
		return fmt.Sprintf("Dia %d", day)
	case LanguageEnglish:
		return fmt.Sprintf("Day %d", day)
	default:
		return fmt.Sprintf("Día %d", day)
	}
}

func (n *ResponseNormalizer) normalizeActivity(ctx context.Context, activity types.Activity, resolveReferences bool) types.Activity {
	if activity.Place.IsRef() && !resolveReferences {
		return activity
	}

	var place types.Place
	if activity.Place.IsRef() {
		place = n.resolveReference(ctx, activity.Place.Ref)
	} else {
		place = *activity.Place.Place
	}

	normalized := NormalizePlace(place, n.cfg.DefaultLocation)
	activity.Place = types.PlaceOrRef{Place: &normalized}
	return activity
}

// resolveReference never fails: lookup errors and missing places become
// distinguishable placeholder places so the response stays well-formed.
func (n *ResponseNormalizer) resolveReference(ctx context.Context, ref string) types.Place {
	resolved, err := n.places.GetPlace(ctx, ref)
	if err != nil {
		n.logger.WarnContext(ctx, "Place lookup failed, using placeholder",
			slog.String("ref", ref), slog.Any("error", err))
		if m := metrics.Get(); m != nil {
			m.PlaceResolutionErrorsTotal.Add(ctx, 1)
		}
		return types.Place{
			Key:         ref,
			Name:        unavailablePlaceName,
			Description: unavailableDescription,
		}
	}
	if resolved == nil {
		n.logger.WarnContext(ctx, "Place reference not found, using placeholder", slog.String("ref", ref))
		if m := metrics.Get(); m != nil {
			m.PlaceResolutionErrorsTotal.Add(ctx, 1)
		}
		return types.Place{
			Key:         ref,
			Name:        notFoundPlaceName,
			Description: notFoundDescription,
		}
	}
	return *resolved
}
