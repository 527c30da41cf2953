package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/northeast-trails/service-trip/internal/domain"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

// PlaceModel is the GORM model for the places table.
type PlaceModel struct {
	ID          string          `gorm:"primaryKey;size:120"`
	Name        string          `gorm:"not null;size:200"`
	Category    string          `gorm:"size:80;index"`
	SubCategory string          `gorm:"size:80"`
	State       string          `gorm:"size:80;index"`
	Rating      *float64        `gorm:""`
	Image       string          `gorm:"size:500"`
	Lat         float64         `gorm:"not null"`
	Lng         float64         `gorm:"not null"`
	Logistics   json.RawMessage `gorm:"type:jsonb"`
	Position    int             `gorm:"not null;default:0;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PlaceModel) TableName() string {
	return "places"
}

// GormPlaceRepository is the GORM-based implementation of PlaceRepository.
type GormPlaceRepository struct {
	db *gorm.DB
}

// NewGormPlaceRepository creates a new GormPlaceRepository.
func NewGormPlaceRepository(db *gorm.DB) *GormPlaceRepository {
	return &GormPlaceRepository{db: db}
}

// FindByID retrieves a place by its slug identifier.
func (r *GormPlaceRepository) FindByID(ctx context.Context, id string) (*catalog.Place, error) {
	var model PlaceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Place", id)
		}
		return nil, fmt.Errorf("failed to find place by ID: %w", err)
	}
	return toDomainPlace(&model)
}

// List retrieves places matching the filter in stable catalog order.
func (r *GormPlaceRepository) List(ctx context.Context, filter catalog.PlaceFilter, page, limit int) ([]*catalog.Place, int64, error) {
	query := r.db.WithContext(ctx).Model(&PlaceModel{})
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count places: %w", err)
	}

	var models []PlaceModel
	offset := (page - 1) * limit
	if err := query.
		Order("position ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list places: %w", err)
	}

	places := make([]*catalog.Place, len(models))
	for i, m := range models {
		p, err := toDomainPlace(&m)
		if err != nil {
			return nil, 0, err
		}
		places[i] = p
	}
	return places, total, nil
}

// Upsert inserts or replaces a place record, keeping the original
// catalog position for existing rows.
func (r *GormPlaceRepository) Upsert(ctx context.Context, place *catalog.Place) error {
	model, err := toPlaceModel(place)
	if err != nil {
		return fmt.Errorf("failed to convert place to model: %w", err)
	}

	var maxPos int
	r.db.WithContext(ctx).Model(&PlaceModel{}).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPos)
	model.Position = maxPos + 1

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "category", "sub_category", "state",
				"rating", "image", "lat", "lng", "logistics", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert place: %w", err)
	}
	return nil
}

// Remove deletes a place record. Absent rows are not an error.
func (r *GormPlaceRepository) Remove(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PlaceModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove place: %w", err)
	}
	return nil
}

// CountByState returns place counts grouped by state (admin).
func (r *GormPlaceRepository) CountByState(ctx context.Context) (map[string]int64, error) {
	type stateCount struct {
		State string
		Count int64
	}
	var results []stateCount
	if err := r.db.WithContext(ctx).Model(&PlaceModel{}).
		Select("state, count(*) as count").
		Group("state").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by state: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.State] = sc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toPlaceModel(p *catalog.Place) (*PlaceModel, error) {
	logistics, err := json.Marshal(p.Logistics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal logistics: %w", err)
	}

	now := time.Now().UTC()
	return &PlaceModel{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		State:       p.State,
		Rating:      p.Rating,
		Image:       p.Image,
		Lat:         p.Coordinates.Lat,
		Lng:         p.Coordinates.Lng,
		Logistics:   logistics,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func toDomainPlace(m *PlaceModel) (*catalog.Place, error) {
	var logistics []catalog.LogisticsEntry
	if len(m.Logistics) > 0 {
		if err := json.Unmarshal(m.Logistics, &logistics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal logistics: %w", err)
		}
	}

	return &catalog.Place{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		SubCategory: m.SubCategory,
		State:       m.State,
		Rating:      m.Rating,
		Image:       m.Image,
		Coordinates: catalog.Coordinates{Lat: m.Lat, Lng: m.Lng},
		Logistics:   logistics,
	}, nil
}
