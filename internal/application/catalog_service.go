package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/northeast-trails/service-trip/internal/domain"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

// CatalogService serves the read-only place catalog and hub directory,
// and applies updates arriving from the offline content pipeline.
type CatalogService struct {
	places catalog.PlaceRepository
	hubs   catalog.HubRepository
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	places catalog.PlaceRepository,
	hubs catalog.HubRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		places: places,
		hubs:   hubs,
		logger: logger,
	}
}

// ListPlaces returns a filtered page of catalog places in stable order.
func (s *CatalogService) ListPlaces(ctx context.Context, filter catalog.PlaceFilter, page, limit int) (*domain.PaginatedResult[catalog.Place], error) {
	places, total, err := s.places.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Place, len(places))
	for i, p := range places {
		items[i] = *p
	}

	result := domain.NewPaginatedResult(items, total, page, limit)
	return &result, nil
}

// GetPlace retrieves a single catalog place.
func (s *CatalogService) GetPlace(ctx context.Context, id string) (*catalog.Place, error) {
	return s.places.FindByID(ctx, id)
}

// ListHubs returns the full hub directory for origin-selection controls.
func (s *CatalogService) ListHubs(ctx context.Context) ([]*catalog.Hub, error) {
	return s.hubs.ListAll(ctx)
}

// UpsertPlace applies a place record from the content pipeline.
func (s *CatalogService) UpsertPlace(ctx context.Context, place catalog.Place) error {
	if place.ID == "" {
		return domain.NewValidationError("place ID is required")
	}
	if place.Name == "" {
		return domain.NewValidationError("place name is required")
	}
	for _, l := range place.Logistics {
		if !l.Type.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid hub type: %s", l.Type))
		}
	}

	if err := s.places.Upsert(ctx, &place); err != nil {
		return err
	}
	s.logger.Info("catalog place upserted",
		zap.String("place_id", place.ID),
		zap.String("state", place.State),
	)
	return nil
}

// RemovePlace retires a place from the catalog.
func (s *CatalogService) RemovePlace(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("place ID is required")
	}
	if err := s.places.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("catalog place removed", zap.String("place_id", id))
	return nil
}

// CatalogStatsDTO holds catalog statistics for the admin dashboard.
type CatalogStatsDTO struct {
	TotalPlaces int64            `json:"total_places"`
	ByState     map[string]int64 `json:"by_state"`
}

// GetCatalogStats returns aggregate catalog statistics (admin).
func (s *CatalogService) GetCatalogStats(ctx context.Context) (*CatalogStatsDTO, error) {
	counts, err := s.places.CountByState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &CatalogStatsDTO{
		TotalPlaces: total,
		ByState:     counts,
	}, nil
}
