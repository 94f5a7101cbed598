package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"miklean/internal/config"
	"miklean/internal/domain"
	"miklean/internal/port"
)

// UpdateProfileInput is the DTO for updating business settings. Nil fields
// are left unchanged; empty strings clear the field.
type UpdateProfileInput struct {
	BusinessID          uuid.UUID
	BusinessName        *string
	BusinessPhone       *string
	PaymentInstructions *string
}

// PaymentMethodsInput is the DTO for the onboarding payment step.
type PaymentMethodsInput struct {
	BusinessID uuid.UUID
	Methods    []domain.PaymentMethod
	Venmo      string
	Zelle      string
	OtherInfo  string
}

// UploadLogoInput is the DTO for logo upload requests.
type UploadLogoInput struct {
	BusinessID uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// ProfileService defines the business profile contract.
type ProfileService interface {
	// Get returns the business profile, creating it on first access.
	Get(ctx context.Context, businessID uuid.UUID, email string) (*domain.BusinessProfile, error)
	Update(ctx context.Context, input *UpdateProfileInput) (*domain.BusinessProfile, error)
	SetPaymentMethods(ctx context.Context, input *PaymentMethodsInput) (*domain.BusinessProfile, error)
	UploadLogo(ctx context.Context, input *UploadLogoInput) (*domain.BusinessProfile, error)
}

type profileService struct {
	repo    port.ProfileRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
	log     *logrus.Logger
}

// NewProfileService creates a new ProfileService implementation.
func NewProfileService(
	repo port.ProfileRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
	log *logrus.Logger,
) ProfileService {
	return &profileService{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		log:     log,
	}
}

func (s *profileService) Get(ctx context.Context, businessID uuid.UUID, email string) (*domain.BusinessProfile, error) {
	profile, err := s.repo.GetByID(ctx, businessID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.repo.Create(ctx, &domain.BusinessProfile{ID: businessID, Email: email}); err != nil {
			return nil, err
		}
		profile, err = s.repo.GetByID(ctx, businessID)
	}
	if err != nil {
		return nil, err
	}
	s.refreshLogoURL(ctx, profile)
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, input *UpdateProfileInput) (*domain.BusinessProfile, error) {
	profile, err := s.repo.GetByID(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		profile.BusinessName = optional(*input.BusinessName)
	}
	if input.BusinessPhone != nil {
		profile.BusinessPhone = optional(*input.BusinessPhone)
	}
	if input.PaymentInstructions != nil {
		profile.PaymentInstructions = optional(*input.PaymentInstructions)
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	s.refreshLogoURL(ctx, profile)
	return profile, nil
}

func (s *profileService) SetPaymentMethods(ctx context.Context, input *PaymentMethodsInput) (*domain.BusinessProfile, error) {
	instructions := BuildPaymentInstructions(input.Methods, input.Venmo, input.Zelle, input.OtherInfo)
	return s.Update(ctx, &UpdateProfileInput{
		BusinessID:          input.BusinessID,
		PaymentInstructions: &instructions,
	})
}

// BuildPaymentInstructions turns the selected payment methods into one line
// per method.
func BuildPaymentInstructions(methods []domain.PaymentMethod, venmo, zelle, other string) string {
	selected := make(map[domain.PaymentMethod]bool, len(methods))
	for _, m := range methods {
		selected[m] = true
	}
	venmo, zelle, other = strings.TrimSpace(venmo), strings.TrimSpace(zelle), strings.TrimSpace(other)

	var lines []string
	if selected[domain.PaymentMethodVenmo] && venmo != "" {
		lines = append(lines, "Venmo: "+venmo)
	}
	if selected[domain.PaymentMethodZelle] && zelle != "" {
		lines = append(lines, "Zelle: "+zelle)
	}
	if selected[domain.PaymentMethodCheck] {
		lines = append(lines, "Check: Make payable to your business name")
	}
	if selected[domain.PaymentMethodCash] {
		lines = append(lines, "Cash accepted")
	}
	if other != "" {
		lines = append(lines, other)
	}
	return strings.Join(lines, "\n")
}

func (s *profileService) UploadLogo(ctx context.Context, input *UploadLogoInput) (*domain.BusinessProfile, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	logoType, ok := domain.AllowedLogoExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxLogoSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading logo header: %w", err)
	}
	contentType := domain.AllowedLogoTypes[logoType]
	if http.DetectContentType(buf[:n]) != contentType {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking logo: %w", err)
	}

	profile, err := s.repo.GetByID(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("logos/%s/logo.%s", input.BusinessID, logoType)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		s.log.WithError(err).WithField("business_id", input.BusinessID).Error("logo upload failed")
		return nil, domain.ErrUploadFailed
	}

	if profile.LogoKey != nil && *profile.LogoKey != key {
		if err := s.storage.Delete(ctx, *profile.LogoKey); err != nil {
			s.log.WithError(err).WithField("key", *profile.LogoKey).Warn("removing previous logo failed")
		}
	}

	profile.LogoKey = &key
	profile.LogoURL = &out.Location
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	s.refreshLogoURL(ctx, profile)
	return profile, nil
}

// refreshLogoURL replaces the stored logo URL with a fresh presigned one.
func (s *profileService) refreshLogoURL(ctx context.Context, profile *domain.BusinessProfile) {
	if profile.LogoKey == nil || s.storage == nil {
		return
	}
	expiry := time.Duration(s.cfg.PresignExpiry) * time.Second
	url, err := s.storage.PresignedURL(ctx, *profile.LogoKey, expiry)
	if err != nil {
		s.log.WithError(err).WithField("business_id", profile.ID).Warn("presigning logo failed")
		return
	}
	profile.LogoURL = &url
}

// optional trims s and returns nil when nothing is left.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
