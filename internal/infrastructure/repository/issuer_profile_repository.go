package repository

import (
	"context"
	"errors"

	"github.com/rgbilling/gst-billing/internal/domain/entity"
	"github.com/rgbilling/gst-billing/internal/domain/repository"
	"gorm.io/gorm"
)

type issuerProfileRepository struct {
	db *gorm.DB
}

// NewIssuerProfileRepository creates a new issuer profile repository
func NewIssuerProfileRepository(db *gorm.DB) repository.IssuerProfileRepository {
	return &issuerProfileRepository{db: db}
}

// Get retrieves the profile, or nil when none has been saved yet
func (r *issuerProfileRepository) Get(ctx context.Context) (*entity.IssuerProfile, error) {
	var profile entity.IssuerProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", entity.IssuerProfileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Save creates or overwrites the profile
func (r *issuerProfileRepository) Save(ctx context.Context, profile *entity.IssuerProfile) error {
	profile.ID = entity.IssuerProfileID
	return r.db.WithContext(ctx).Save(profile).Error
}
