package veterinarians

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vet-clinic-api/internal/metrics"
	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
)

var (
	ErrInvalidInput     = apperr.Validation("invalid veterinarian")
	ErrNotFound         = apperr.NotFound("veterinarian not found")
	ErrDuplicateLicense = apperr.Validation("license_number already registered")
)

type Service struct {
	repo     Repository
	validate *validation.Validator
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validation.New(),
		log:      log.With().Str("module", "veterinarians").Logger(),
		now:      time.Now,
	}
}

type CreateInput struct {
	Name          string `json:"name" validate:"notblank"`
	Phone         string `json:"phone" validate:"notblank"`
	LicenseNumber string `json:"license_number" validate:"notblank"`
	Specialty     string `json:"specialty"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Veterinarian, error) {
	if err := s.validate.Struct(ErrInvalidInput, in); err != nil {
		return Veterinarian{}, err
	}
	license := strings.TrimSpace(in.LicenseNumber)

	// Chequeo previo para un mensaje claro; la unicidad real la garantiza el store.
	_, err := s.repo.FindByLicense(ctx, license)
	switch {
	case err == nil:
		return Veterinarian{}, ErrDuplicateLicense.WithDetails(license)
	case !errors.Is(err, ErrNotFound):
		return Veterinarian{}, fmt.Errorf("veterinarians: find by license: %w", err)
	}

	v, err := s.repo.Create(ctx, Veterinarian{
		Name:          in.Name,
		Phone:         in.Phone,
		LicenseNumber: license,
		Specialty:     in.Specialty,
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateLicense) {
			return Veterinarian{}, ErrDuplicateLicense.WithDetails(license)
		}
		return Veterinarian{}, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("veterinarian").Inc()
	s.log.Info().Int64("veterinarian_id", v.ID).Str("license_number", v.LicenseNumber).Msg("veterinarian created")
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Veterinarian, error) {
	if id <= 0 {
		return Veterinarian{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Veterinarian, error) {
	return s.repo.List(ctx)
}

// Exists lo usa appointments para validar veterinarian_id.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}
