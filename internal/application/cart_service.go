package application

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/northeast-trails/service-trip/internal/domain/cart"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
	"github.com/northeast-trails/service-trip/internal/events"
	"github.com/northeast-trails/service-trip/internal/geo"
	"github.com/northeast-trails/service-trip/internal/itinerary"
	"github.com/northeast-trails/service-trip/internal/kafka"
)

// CartDTO is the response representation of a session's cart, including
// the derived views the sidebar and map subscribe to.
type CartDTO struct {
	Entries           []cart.Entry      `json:"entries"`
	Count             int               `json:"count"`
	SelectedHub       string            `json:"selected_hub"`
	SidebarOpen       bool              `json:"sidebar_open"`
	Groups            []cart.StateGroup `json:"groups"`
	AvailableHubs     []cart.RankedHub  `json:"available_hubs"`
	TotalDriveMinutes int               `json:"total_drive_minutes"`
	TotalDriveDisplay string            `json:"total_drive_display"`
}

// ItineraryDTO is the shareable itinerary text and its messaging link.
type ItineraryDTO struct {
	Text      string `json:"text"`
	ShareLink string `json:"share_link"`
}

// CartService orchestrates trip cart use cases. Carts live in memory
// keyed by session; every entry or hub mutation is written through to
// durable per-session state best-effort — a failed write is logged and
// ignored, the in-memory mutation stands.
type CartService struct {
	mu       sync.Mutex
	carts    map[string]*cart.Cart
	places   catalog.PlaceRepository
	store    cart.StateRepository
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewCartService creates a new CartService. The producer may be nil in
// tests; events are then skipped.
func NewCartService(
	places catalog.PlaceRepository,
	store cart.StateRepository,
	producer *kafka.Producer,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		carts:    make(map[string]*cart.Cart),
		places:   places,
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

// AddPlace adds a catalog place to the session's cart. Adding a place
// already present is a no-op that still returns the current cart.
func (s *CartService) AddPlace(ctx context.Context, sessionID, placeID string) (*CartDTO, error) {
	place, err := s.places.FindByID(ctx, placeID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ctx, sessionID)
	if c.AddPlace(*place) {
		s.persist(ctx, c)
		s.publishEvent(ctx, events.TripPlaceAdded, events.PlaceAddedEvent{
			SessionID:  sessionID,
			PlaceID:    place.ID,
			PlaceName:  place.Name,
			State:      place.State,
			CartSize:   c.Count(),
			OccurredAt: time.Now().UTC(),
		})
	}

	result := toCartDTO(c)
	return &result, nil
}

// RemovePlace removes a place from the session's cart. Removing an
// absent place is a no-op. Hub selection is never touched.
func (s *CartService) RemovePlace(ctx context.Context, sessionID, placeID string) (*CartDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ctx, sessionID)
	removed := c.RemovePlace(placeID)
	s.persist(ctx, c)
	if removed {
		s.publishEvent(ctx, events.TripPlaceRemoved, events.PlaceRemovedEvent{
			SessionID:  sessionID,
			PlaceID:    placeID,
			CartSize:   c.Count(),
			OccurredAt: time.Now().UTC(),
		})
	}

	result := toCartDTO(c)
	return &result, nil
}

// Clear empties the session's cart and resets the selected hub.
func (s *CartService) Clear(ctx context.Context, sessionID string) (*CartDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ctx, sessionID)
	c.Clear()
	s.persist(ctx, c)
	s.publishEvent(ctx, events.TripCartCleared, events.CartClearedEvent{
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
	})

	result := toCartDTO(c)
	return &result, nil
}

// SelectHub sets the session's starting hub. Any string is accepted,
// including names no cart entry covers.
func (s *CartService) SelectHub(ctx context.Context, sessionID, hubName string) (*CartDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ctx, sessionID)
	c.SelectHub(hubName)
	s.persist(ctx, c)
	s.publishEvent(ctx, events.TripHubSelected, events.HubSelectedEvent{
		SessionID:  sessionID,
		Hub:        hubName,
		OccurredAt: time.Now().UTC(),
	})

	result := toCartDTO(c)
	return &result, nil
}

// ToggleSidebar flips sidebar visibility. Session-only, not persisted.
func (s *CartService) ToggleSidebar(ctx context.Context, sessionID string) (*CartDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ctx, sessionID)
	c.ToggleSidebar()

	result := toCartDTO(c)
	return &result, nil
}

// GetCart returns the session's cart with all derived views.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := toCartDTO(s.cartFor(ctx, sessionID))
	return &result, nil
}

// Itinerary renders the session's cart as shareable text plus link.
func (s *CartService) Itinerary(ctx context.Context, sessionID string) (*ItineraryDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ctx, sessionID)
	text := itinerary.Format(c.GroupedByState(), c.SelectedHub(), c.TotalDriveMinutes())
	return &ItineraryDTO{
		Text:      text,
		ShareLink: itinerary.ShareLink(text),
	}, nil
}

// Origin resolves the session's active origin for the map.
func (s *CartService) Origin(ctx context.Context, sessionID string) cart.Origin {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cartFor(ctx, sessionID).Origin()
}

// SetDeviceLocation records a successful geolocation result and makes
// the device location the active origin.
func (s *CartService) SetDeviceLocation(ctx context.Context, sessionID string, coords catalog.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ctx, sessionID)
	c.SetDeviceLocation(coords)
	s.persist(ctx, c)
}

// ClearOrigin resets the session's origin to none.
func (s *CartService) ClearOrigin(ctx context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ctx, sessionID)
	c.ClearOrigin()
	s.persist(ctx, c)
}

// Forget drops the in-memory cart for a session, forcing the next touch
// to rehydrate from durable state.
func (s *CartService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}

// --- Helpers ---

// cartFor returns the session's cart, rehydrating from durable state on
// first touch. Unreadable or absent stored state starts empty. Caller
// must hold s.mu.
func (s *CartService) cartFor(ctx context.Context, sessionID string) *cart.Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}

	var c *cart.Cart
	entries, hub, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.logger.Debug("starting with empty cart",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		c = cart.New(sessionID)
	} else {
		c = cart.Rehydrate(sessionID, entries, hub)
	}
	s.carts[sessionID] = c
	return c
}

// persist writes the cart's durable state best-effort. Failures are
// logged and swallowed so the in-memory mutation always succeeds.
func (s *CartService) persist(ctx context.Context, c *cart.Cart) {
	if err := s.store.Save(ctx, c.SessionID(), c.Entries(), c.SelectedHub()); err != nil {
		s.logger.Warn("cart state not persisted",
			zap.String("session_id", c.SessionID()),
			zap.Error(err),
		)
	}
}

func (s *CartService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent("service-trip", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicTripEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toCartDTO(c *cart.Cart) CartDTO {
	total := c.TotalDriveMinutes()
	return CartDTO{
		Entries:           c.Entries(),
		Count:             c.Count(),
		SelectedHub:       c.SelectedHub(),
		SidebarOpen:       c.SidebarOpen(),
		Groups:            c.GroupedByState(),
		AvailableHubs:     c.AvailableHubs(),
		TotalDriveMinutes: total,
		TotalDriveDisplay: geo.FormatDuration(total),
	}
}
