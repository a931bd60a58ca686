package appointments

import (
	"context"
	"errors"
)

// Repository es el puerto de persistencia de turnos.
//
// Create devuelve ErrConflict si (veterinarian_id, date, time) ya existe:
// el store es la garantía real de unicidad, FindBySlot es solo el camino rápido.
// List devuelve los turnos ordenados por date, time, id con Animal (y su dueño)
// y Veterinarian cargados.
type Repository interface {
	Create(ctx context.Context, a Appointment) (Appointment, error)
	GetByID(ctx context.Context, id int64) (Appointment, error)
	FindBySlot(ctx context.Context, veterinarianID int64, date, time string) (Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// AnimalLookup y VeterinarianLookup evitan importar los paquetes de dominio
// (ciclo animals -> appointments vía cascadas en los adapters).
type AnimalLookup interface {
	Exists(ctx context.Context, animalID int64) (bool, error)
}

type VeterinarianLookup interface {
	Exists(ctx context.Context, veterinarianID int64) (bool, error)
}

// ErrSlotLocked lo devuelve un SlotGuard cuando otro proceso tiene el lock.
var ErrSlotLocked = errors.New("appointments: slot locked")

// SlotGuard serializa check+insert de un mismo slot entre réplicas.
// Lock devuelve la función para liberarlo.
type SlotGuard interface {
	Lock(ctx context.Context, veterinarianID int64, date, time string) (release func(context.Context) error, err error)
}

// NoopGuard se usa cuando no hay Redis configurado.
type NoopGuard struct{}

func (NoopGuard) Lock(context.Context, int64, string, string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
