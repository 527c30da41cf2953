package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/northeast-trails/service-trip/internal/domain/cart"
)

// CartStateModel is the per-session key-value row holding serialized
// cart entries and the selected-hub string. There is no version field;
// older entry shapes are tolerated if they still decode.
type CartStateModel struct {
	SessionID   string          `gorm:"primaryKey;size:64"`
	Entries     json.RawMessage `gorm:"type:jsonb"`
	SelectedHub string          `gorm:"size:200"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CartStateModel) TableName() string {
	return "cart_states"
}

// GormCartStateRepository is the GORM-based implementation of the cart
// StateRepository contract.
type GormCartStateRepository struct {
	db *gorm.DB
}

// NewGormCartStateRepository creates a new GormCartStateRepository.
func NewGormCartStateRepository(db *gorm.DB) *GormCartStateRepository {
	return &GormCartStateRepository{db: db}
}

// Load retrieves the persisted entries and selected hub for a session.
// An absent row or undecodable entries payload is reported as an error;
// the caller treats either as "start empty".
func (r *GormCartStateRepository) Load(ctx context.Context, sessionID string) ([]cart.Entry, string, error) {
	var model CartStateModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("no stored cart state for session %s", sessionID)
		}
		return nil, "", fmt.Errorf("failed to load cart state: %w", err)
	}

	var entries []cart.Entry
	if len(model.Entries) > 0 {
		if err := json.Unmarshal(model.Entries, &entries); err != nil {
			return nil, "", fmt.Errorf("failed to decode stored cart entries: %w", err)
		}
	}
	return entries, model.SelectedHub, nil
}

// Save persists the full entry list and selected hub for a session.
func (r *GormCartStateRepository) Save(ctx context.Context, sessionID string, entries []cart.Entry, selectedHub string) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode cart entries: %w", err)
	}

	model := CartStateModel{
		SessionID:   sessionID,
		Entries:     payload,
		SelectedHub: selectedHub,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"entries", "selected_hub", "updated_at"}),
		}).
		Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save cart state: %w", err)
	}
	return nil
}
