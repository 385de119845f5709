package repository

import (
	"context"

	"github.com/rgbilling/gst-billing/internal/domain/entity"
)

// IssuerProfileRepository defines the interface for issuer profile data access
type IssuerProfileRepository interface {
	Get(ctx context.Context) (*entity.IssuerProfile, error)
	Save(ctx context.Context, profile *entity.IssuerProfile) error
}
