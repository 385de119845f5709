package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"strings"
	"sync"

	"github.com/rgbilling/gst-billing/internal/config"
	"github.com/rgbilling/gst-billing/internal/domain/entity"
	"github.com/rgbilling/gst-billing/internal/domain/repository"
	"github.com/rgbilling/gst-billing/pkg/apperror"
	"github.com/rgbilling/gst-billing/pkg/gst"
)

// ProfileService owns the issuer profile. The stored row is read once by
// Load and then served from memory; every change writes through.
type ProfileService struct {
	profileRepo repository.IssuerProfileRepository
	seed        entity.IssuerProfile

	mu      sync.RWMutex
	current *entity.IssuerProfile
}

// NewProfileService creates a profile service that seeds from cfg when the
// store has no profile yet.
func NewProfileService(profileRepo repository.IssuerProfileRepository, cfg *config.IssuerConfig) *ProfileService {
	s := &ProfileService{profileRepo: profileRepo}
	if cfg != nil {
		s.seed = entity.IssuerProfile{
			Name:               cfg.Name,
			GSTIN:              cfg.GSTIN,
			Contact:            cfg.Contact,
			DealsIn:            cfg.DealsIn,
			Address:            cfg.Address,
			SignatoryName:      cfg.SignatoryName,
			Disclaimer:         cfg.Disclaimer,
			DefaultNote1:       cfg.DefaultNote1,
			DefaultNote2:       cfg.DefaultNote2,
			DefaultBankDetails: cfg.DefaultBankDetails,
			DefaultCGSTRate:    cfg.DefaultCGSTRate,
			DefaultSGSTRate:    cfg.DefaultSGSTRate,
			DefaultIGSTRate:    cfg.DefaultIGSTRate,
		}
	}
	return s
}

// Load reads the stored profile, seeding it on first start.
func (s *ProfileService) Load(ctx context.Context) error {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		seeded := s.seed
		if err := s.profileRepo.Save(ctx, &seeded); err != nil {
			return err
		}
		log.Printf("Issuer profile seeded: %s", seeded.Name)
		profile = &seeded
	}

	s.mu.Lock()
	s.current = profile
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the loaded profile. Before Load it returns the
// configured seed.
func (s *ProfileService) Current() entity.IssuerProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return s.seed
	}
	return *s.current
}

// UpdateProfileInput represents the input for updating the issuer profile
type UpdateProfileInput struct {
	Name               string
	GSTIN              string
	Contact            string
	DealsIn            string
	Address            string
	SignatoryName      string
	Disclaimer         string
	DefaultNote1       string
	DefaultNote2       string
	DefaultBankDetails string
	DefaultCGSTRate    gst.Number
	DefaultSGSTRate    gst.Number
	DefaultIGSTRate    gst.Number
}

// Update replaces the profile text fields and default rates. The signature
// is left untouched.
func (s *ProfileService) Update(ctx context.Context, input *UpdateProfileInput) (*entity.IssuerProfile, error) {
	return s.modify(ctx, func(p *entity.IssuerProfile) {
		p.Name = strings.TrimSpace(input.Name)
		p.GSTIN = strings.ToUpper(strings.TrimSpace(input.GSTIN))
		p.Contact = strings.TrimSpace(input.Contact)
		p.DealsIn = input.DealsIn
		p.Address = input.Address
		p.SignatoryName = strings.TrimSpace(input.SignatoryName)
		p.Disclaimer = input.Disclaimer
		p.DefaultNote1 = input.DefaultNote1
		p.DefaultNote2 = input.DefaultNote2
		p.DefaultBankDetails = input.DefaultBankDetails
		p.DefaultCGSTRate = input.DefaultCGSTRate.Float()
		p.DefaultSGSTRate = input.DefaultSGSTRate.Float()
		p.DefaultIGSTRate = input.DefaultIGSTRate.Float()
	})
}

// SetSignature stores a new signature image. data may be raw image bytes or
// a base64 data URL; anything that does not decode as an image is rejected.
func (s *ProfileService) SetSignature(ctx context.Context, data []byte) (*entity.IssuerProfile, error) {
	raw, format, err := decodeSignature(data)
	if err != nil {
		return nil, err
	}
	return s.modify(ctx, func(p *entity.IssuerProfile) {
		p.Signature = raw
		p.SignatureType = "image/" + format
	})
}

// ClearSignature removes the signature; invoices then print the signatory name.
func (s *ProfileService) ClearSignature(ctx context.Context) (*entity.IssuerProfile, error) {
	return s.modify(ctx, func(p *entity.IssuerProfile) {
		p.Signature = nil
		p.SignatureType = ""
	})
}

func (s *ProfileService) modify(ctx context.Context, apply func(p *entity.IssuerProfile)) (*entity.IssuerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next entity.IssuerProfile
	if s.current != nil {
		next = *s.current
	} else {
		next = s.seed
	}
	apply(&next)

	if err := s.profileRepo.Save(ctx, &next); err != nil {
		return nil, err
	}
	s.current = &next

	out := next
	return &out, nil
}

func decodeSignature(data []byte) ([]byte, string, error) {
	raw := data
	if trimmed := bytes.TrimSpace(data); bytes.HasPrefix(trimmed, []byte("data:")) {
		_, payload, ok := bytes.Cut(trimmed, []byte(","))
		if !ok {
			return nil, "", apperror.ErrInvalidSignature
		}
		decoded, err := base64.StdEncoding.DecodeString(string(payload))
		if err != nil {
			return nil, "", apperror.ErrInvalidSignature
		}
		raw = decoded
	}
	if len(raw) == 0 {
		return nil, "", apperror.ErrInvalidSignature
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, "", apperror.ErrInvalidSignature
	}
	return raw, format, nil
}
