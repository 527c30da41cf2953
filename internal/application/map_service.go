package application

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/northeast-trails/service-trip/internal/domain/cart"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
	"github.com/northeast-trails/service-trip/internal/geo"
	"github.com/northeast-trails/service-trip/internal/geoloc"
)

// Fixed default region the map recenters to when no origin is active.
var defaultCenter = catalog.Coordinates{Lat: 26.2006, Lng: 92.9376}

const (
	defaultZoom = 7
	originZoom  = 9
)

// catalogViewLimit caps how many places one map frame renders.
const catalogViewLimit = 1000

// MarkerStyle carries the rendering emphasis for one marker. In-radius
// points render larger and stronger than out-of-radius ones.
type MarkerStyle struct {
	Radius  int     `json:"radius"`
	Opacity float64 `json:"opacity"`
	Weight  int     `json:"weight"`
}

var (
	inRadiusStyle  = MarkerStyle{Radius: 10, Opacity: 0.9, Weight: 2}
	outRadiusStyle = MarkerStyle{Radius: 6, Opacity: 0.4, Weight: 1}
)

// MarkerDTO is one place marker in a computed map frame.
type MarkerDTO struct {
	PlaceID      string              `json:"place_id"`
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	State        string              `json:"state"`
	Coordinates  catalog.Coordinates `json:"coordinates"`
	DistanceKm   *float64            `json:"distance_km,omitempty"`
	InRadius     bool                `json:"in_radius"`
	DriveMinutes *int                `json:"drive_minutes,omitempty"`
	DriveDisplay string              `json:"drive_display,omitempty"`
	Estimated    bool                `json:"estimated"`
	Style        MarkerStyle         `json:"style"`
}

// OverlayDTO describes the single radius circle around the active origin.
type OverlayDTO struct {
	Center   catalog.Coordinates `json:"center"`
	RadiusKm float64             `json:"radius_km"`
}

// OriginDTO is the resolved origin state exposed to the client.
type OriginDTO struct {
	Kind   string               `json:"kind"`
	Hub    string               `json:"hub,omitempty"`
	Coords *catalog.Coordinates `json:"coords,omitempty"`
}

// MapViewDTO is one fully recomputed map frame. Markers are replaced
// wholesale on every computation, never diffed.
type MapViewDTO struct {
	Origin        OriginDTO            `json:"origin"`
	Markers       []MarkerDTO          `json:"markers"`
	RadiusOverlay *OverlayDTO          `json:"radius_overlay,omitempty"`
	OriginMarker  *catalog.Coordinates `json:"origin_marker,omitempty"`
	InRadiusCount int                  `json:"in_radius_count"`
	Center        catalog.Coordinates  `json:"center"`
	Zoom          int                  `json:"zoom"`
	Status        string               `json:"status,omitempty"`
}

// MapService computes map frames from the catalog, the cart's origin
// state and geolocation results.
type MapService struct {
	carts  *CartService
	places catalog.PlaceRepository
	hubs   catalog.HubRepository
	logger *zap.Logger

	mu     sync.Mutex
	status map[string]string
}

// NewMapService creates a new MapService.
func NewMapService(
	carts *CartService,
	places catalog.PlaceRepository,
	hubs catalog.HubRepository,
	logger *zap.Logger,
) *MapService {
	return &MapService{
		carts:  carts,
		places: places,
		hubs:   hubs,
		logger: logger,
		status: make(map[string]string),
	}
}

// ComputeView builds a full map frame for the session's current origin.
func (s *MapService) ComputeView(ctx context.Context, sessionID string) (*MapViewDTO, error) {
	origin := s.carts.Origin(ctx, sessionID)
	originCoords := s.resolveOrigin(ctx, origin)

	places, _, err := s.places.List(ctx, catalog.PlaceFilter{}, 1, catalogViewLimit)
	if err != nil {
		return nil, err
	}

	view := &MapViewDTO{
		Origin: OriginDTO{
			Kind:   string(origin.Kind),
			Hub:    origin.Hub,
			Coords: origin.Coords,
		},
		Markers: make([]MarkerDTO, 0, len(places)),
		Center:  defaultCenter,
		Zoom:    defaultZoom,
		Status:  s.statusFor(sessionID),
	}

	for _, p := range places {
		view.Markers = append(view.Markers, s.buildMarker(p, origin, originCoords))
	}

	for _, m := range view.Markers {
		if m.InRadius {
			view.InRadiusCount++
		}
	}

	if originCoords != nil {
		view.RadiusOverlay = &OverlayDTO{Center: *originCoords, RadiusKm: geo.RadiusThresholdKm}
		view.OriginMarker = originCoords
		view.Center = *originCoords
		view.Zoom = originZoom
	}
	return view, nil
}

// Locate runs one geolocation attempt for the session and returns the
// resulting UI status, empty on success. Failures leave the prior
// origin untouched; a success from a later request overwrites an
// earlier one (last writer wins).
func (s *MapService) Locate(ctx context.Context, sessionID string, provider geoloc.Provider) string {
	s.setStatus(sessionID, geoloc.StatusLocating)

	coords, err := geoloc.Locate(ctx, provider)
	if err != nil {
		status := geoloc.StatusFor(err)
		s.setStatus(sessionID, status)
		s.logger.Info("geolocation failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return status
	}

	s.carts.SetDeviceLocation(ctx, sessionID, coords)
	s.setStatus(sessionID, "")
	return ""
}

// ClearOrigin transitions the session back to no origin; the next frame
// removes the overlay and origin marker and recenters to the default
// region.
func (s *MapService) ClearOrigin(ctx context.Context, sessionID string) {
	s.carts.ClearOrigin(ctx, sessionID)
	s.setStatus(sessionID, "")
}

// --- Helpers ---

// resolveOrigin maps the origin state to coordinates usable for distance
// computation. A selected hub name missing from the directory resolves
// to nil — consumers render that like no origin for distances while
// table-driven drive times still apply.
func (s *MapService) resolveOrigin(ctx context.Context, origin cart.Origin) *catalog.Coordinates {
	switch origin.Kind {
	case cart.OriginHub:
		hub, err := s.hubs.FindByName(ctx, origin.Hub)
		if err != nil {
			s.logger.Debug("selected hub not in directory",
				zap.String("hub", origin.Hub),
			)
			return nil
		}
		coords := hub.Coordinates
		return &coords
	case cart.OriginDevice:
		return origin.Coords
	default:
		return nil
	}
}

func (s *MapService) buildMarker(p *catalog.Place, origin cart.Origin, originCoords *catalog.Coordinates) MarkerDTO {
	m := MarkerDTO{
		PlaceID:     p.ID,
		Name:        p.Name,
		Category:    p.Category,
		State:       p.State,
		Coordinates: p.Coordinates,
		Style:       outRadiusStyle,
	}

	if originCoords != nil {
		d := geo.Distance(*originCoords, p.Coordinates)
		m.DistanceKm = &d
		m.InRadius = d <= geo.RadiusThresholdKm
		if m.InRadius {
			m.Style = inRadiusStyle
		}
	}

	switch origin.Kind {
	case cart.OriginHub:
		if minutes, ok := geo.DriveTimeFromHub(p.Logistics, origin.Hub); ok {
			m.DriveMinutes = &minutes
			m.DriveDisplay = geo.FormatDuration(minutes)
		}
	case cart.OriginDevice:
		if m.DistanceKm != nil {
			minutes := geo.EstimateDriveTime(*m.DistanceKm)
			m.DriveMinutes = &minutes
			m.DriveDisplay = geo.FormatDuration(minutes)
			m.Estimated = true
		}
	}
	return m
}

func (s *MapService) setStatus(sessionID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == "" {
		delete(s.status, sessionID)
		return
	}
	s.status[sessionID] = status
}

func (s *MapService) statusFor(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status[sessionID]
}
