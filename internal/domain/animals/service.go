package animals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"vet-clinic-api/internal/metrics"
	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
)

var (
	ErrInvalidInput  = apperr.Validation("invalid animal")
	ErrNotFound      = apperr.NotFound("animal not found")
	ErrOwnerNotFound = apperr.NotFound("owner not found")
)

type Service struct {
	repo     Repository
	owners   OwnerLookup
	validate *validation.Validator
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, owners OwnerLookup, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		owners:   owners,
		validate: validation.New(),
		log:      log.With().Str("module", "animals").Logger(),
		now:      time.Now,
	}
}

type CreateInput struct {
	Name    string `json:"name" validate:"notblank"`
	Species string `json:"species" validate:"notblank"`
	Breed   string `json:"breed"`
	Age     *int   `json:"age" validate:"omitempty,gte=0,lte=200"`
	OwnerID int64  `json:"owner_id" validate:"gt=0"`
}

// Create registra un animal. El dueño se valida antes de escribir nada.
func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	if err := s.validate.Struct(ErrInvalidInput, in); err != nil {
		return Animal{}, err
	}

	ok, err := s.owners.Exists(ctx, in.OwnerID)
	if err != nil {
		return Animal{}, fmt.Errorf("animals: lookup owner: %w", err)
	}
	if !ok {
		return Animal{}, ErrOwnerNotFound.WithDetails(fmt.Sprintf("owner_id=%d", in.OwnerID))
	}

	a, err := s.repo.Create(ctx, Animal{
		OwnerID:   in.OwnerID,
		Name:      in.Name,
		Species:   in.Species,
		Breed:     in.Breed,
		Age:       in.Age,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		// el dueño puede haberse borrado entre el lookup y el insert
		return Animal{}, err
	}

	// Create no trae el dueño embebido; se relee para responder igual que GetByID
	created, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return Animal{}, fmt.Errorf("animals: reload %d: %w", a.ID, err)
	}
	a = created

	metrics.RecordsCreatedTotal.WithLabelValues("animal").Inc()
	s.log.Info().Int64("animal_id", a.ID).Int64("owner_id", a.OwnerID).Msg("animal created")
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Animal, error) {
	if id <= 0 {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

// Exists lo usa appointments para validar animal_id.
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
