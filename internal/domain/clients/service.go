package clients

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"vet-clinic-api/internal/metrics"
	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
)

var (
	ErrInvalidInput = apperr.Validation("invalid client")
	ErrNotFound     = apperr.NotFound("client not found")
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
		log:      log.With().Str("module", "clients").Logger(),
		now:      time.Now,
	}
}

type CreateInput struct {
	Name    string `json:"name" validate:"notblank"`
	Phone   string `json:"phone" validate:"notblank"`
	Email   string `json:"email" validate:"notblank,email"`
	Address string `json:"address"`
}

// Create registra un cliente. Los campos se guardan tal cual llegan.
func (s *Service) Create(ctx context.Context, in CreateInput) (Client, error) {
	if err := s.validate.Struct(ErrInvalidInput, in); err != nil {
		return Client{}, err
	}

	c, err := s.repo.Create(ctx, Client{
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return Client{}, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("client").Inc()
	s.log.Info().Int64("client_id", c.ID).Msg("client created")
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Client, error) {
	if id <= 0 {
		return Client{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// Exists lo usa animals para validar owner_id sin importar este paquete.
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
