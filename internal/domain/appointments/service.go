package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"vet-clinic-api/internal/metrics"
	"vet-clinic-api/internal/platform/apperr"
)

var (
	ErrMissingFields        = apperr.Validation("date_time (or date and time), animal_id and veterinarian_id are required")
	ErrInvalidInput         = apperr.Validation("invalid appointment")
	ErrNotFound             = apperr.NotFound("appointment not found")
	ErrAnimalNotFound       = apperr.NotFound("animal not found")
	ErrVeterinarianNotFound = apperr.NotFound("veterinarian not found")
	ErrConflict             = apperr.Conflict("this veterinarian already has an appointment at this time")
)

type Service struct {
	repo    Repository
	animals AnimalLookup
	vets    VeterinarianLookup
	guard   SlotGuard
	log     zerolog.Logger
	now     func() time.Time
}

// NewService arma el servicio de turnos. guard puede ser nil (sin lock distribuido).
func NewService(repo Repository, animals AnimalLookup, vets VeterinarianLookup, guard SlotGuard, log zerolog.Logger) *Service {
	if guard == nil {
		guard = NoopGuard{}
	}
	return &Service{
		repo:    repo,
		animals: animals,
		vets:    vets,
		guard:   guard,
		log:     log.With().Str("module", "appointments").Logger(),
		now:     time.Now,
	}
}

// Schedule agenda un turno:
// normaliza -> valida -> animal y veterinario existen -> lock del slot ->
// chequeo de conflicto -> insert.
func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (Appointment, error) {
	slot := Normalize(req)
	if err := slot.Validate(); err != nil {
		return Appointment{}, err
	}

	ok, err := s.animals.Exists(ctx, slot.AnimalID)
	if err != nil {
		return Appointment{}, fmt.Errorf("appointments: lookup animal: %w", err)
	}
	if !ok {
		return Appointment{}, ErrAnimalNotFound.WithDetails(fmt.Sprintf("animal_id=%d", slot.AnimalID))
	}

	ok, err = s.vets.Exists(ctx, slot.VeterinarianID)
	if err != nil {
		return Appointment{}, fmt.Errorf("appointments: lookup veterinarian: %w", err)
	}
	if !ok {
		return Appointment{}, ErrVeterinarianNotFound.WithDetails(fmt.Sprintf("veterinarian_id=%d", slot.VeterinarianID))
	}

	release, err := s.guard.Lock(ctx, slot.VeterinarianID, slot.Date, slot.Time)
	if err != nil {
		if errors.Is(err, ErrSlotLocked) {
			return Appointment{}, s.conflict(slot, metrics.ConflictSourceLock)
		}
		return Appointment{}, fmt.Errorf("appointments: lock slot: %w", err)
	}
	defer func() {
		// se libera aunque el request se haya cancelado
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			s.log.Warn().Err(rerr).Int64("veterinarian_id", slot.VeterinarianID).Msg("release slot lock")
		}
	}()

	_, err = s.repo.FindBySlot(ctx, slot.VeterinarianID, slot.Date, slot.Time)
	switch {
	case err == nil:
		return Appointment{}, s.conflict(slot, metrics.ConflictSourcePrecheck)
	case !errors.Is(err, ErrNotFound):
		return Appointment{}, fmt.Errorf("appointments: find by slot: %w", err)
	}

	a, err := s.repo.Create(ctx, Appointment{
		Date:           slot.Date,
		Time:           slot.Time,
		Reason:         slot.Reason,
		AnimalID:       slot.AnimalID,
		VeterinarianID: slot.VeterinarianID,
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return Appointment{}, s.conflict(slot, metrics.ConflictSourceStore)
		}
		return Appointment{}, err
	}

	metrics.AppointmentsScheduledTotal.Inc()
	s.log.Info().
		Int64("appointment_id", a.ID).
		Int64("veterinarian_id", a.VeterinarianID).
		Int64("animal_id", a.AnimalID).
		Str("date", a.Date).
		Str("time", a.Time).
		Msg("appointment scheduled")
	return a, nil
}

func (s *Service) conflict(slot Slot, source string) error {
	metrics.AppointmentConflictsTotal.WithLabelValues(source).Inc()
	s.log.Warn().
		Int64("veterinarian_id", slot.VeterinarianID).
		Str("date", slot.Date).
		Str("time", slot.Time).
		Str("source", source).
		Msg("double booking rejected")
	return ErrConflict.WithDetails(fmt.Sprintf("veterinarian_id=%d date=%s time=%s", slot.VeterinarianID, slot.Date, slot.Time))
}

// Cancel borra el turno definitivamente.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.AppointmentsCancelledTotal.Inc()
	s.log.Info().Int64("appointment_id", id).Msg("appointment cancelled")
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (Appointment, error) {
	if id <= 0 {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve todos los turnos ordenados por fecha y hora.
func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}
