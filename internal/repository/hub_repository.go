package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/northeast-trails/service-trip/internal/domain"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

// HubModel is the GORM model for the hubs table.
type HubModel struct {
	ID        string    `gorm:"primaryKey;size:120"`
	Name      string    `gorm:"uniqueIndex;not null;size:200"`
	Type      string    `gorm:"not null;size:20"`
	Lat       float64   `gorm:"not null"`
	Lng       float64   `gorm:"not null"`
	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (HubModel) TableName() string {
	return "hubs"
}

// GormHubRepository is the GORM-based implementation of HubRepository.
type GormHubRepository struct {
	db *gorm.DB
}

// NewGormHubRepository creates a new GormHubRepository.
func NewGormHubRepository(db *gorm.DB) *GormHubRepository {
	return &GormHubRepository{db: db}
}

// ListAll retrieves every known hub in directory order.
func (r *GormHubRepository) ListAll(ctx context.Context) ([]*catalog.Hub, error) {
	var models []HubModel
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list hubs: %w", err)
	}

	hubs := make([]*catalog.Hub, len(models))
	for i, m := range models {
		hubs[i] = toDomainHub(&m)
	}
	return hubs, nil
}

// FindByName retrieves a hub by its full display name.
func (r *GormHubRepository) FindByName(ctx context.Context, name string) (*catalog.Hub, error) {
	var model HubModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Hub", name)
		}
		return nil, fmt.Errorf("failed to find hub by name: %w", err)
	}
	return toDomainHub(&model), nil
}

// Seed inserts directory entries not yet present. Existing rows are left
// untouched, so re-running on boot is safe.
func (r *GormHubRepository) Seed(ctx context.Context, hubs []catalog.Hub) error {
	for i, h := range hubs {
		now := time.Now().UTC()
		model := HubModel{
			ID:        h.ID,
			Name:      h.Name,
			Type:      string(h.Type),
			Lat:       h.Coordinates.Lat,
			Lng:       h.Coordinates.Lng,
			Position:  i,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model).Error; err != nil {
			return fmt.Errorf("failed to seed hub %s: %w", h.ID, err)
		}
	}
	return nil
}

func toDomainHub(m *HubModel) *catalog.Hub {
	return &catalog.Hub{
		ID:   m.ID,
		Name: m.Name,
		Type: catalog.HubType(m.Type),
		Coordinates: catalog.Coordinates{
			Lat: m.Lat,
			Lng: m.Lng,
		},
	}
}
