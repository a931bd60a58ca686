// Package memory implementa los repositorios sobre mapas en memoria.
// Se usa en desarrollo (sin DB_DSN) y en los tests end-to-end.
package memory

import (
	"sync"

	"vet-clinic-api/internal/domain/animals"
	"vet-clinic-api/internal/domain/appointments"
	"vet-clinic-api/internal/domain/clients"
	"vet-clinic-api/internal/domain/veterinarians"
)

// Store guarda todas las entidades bajo un único mutex: así las FK, las
// cascadas y la unicidad de (veterinario, fecha, hora) son atómicas, igual
// que en Postgres.
type Store struct {
	mu sync.RWMutex

	clients       map[int64]clients.Client
	animals       map[int64]animals.Animal
	veterinarians map[int64]veterinarians.Veterinarian
	appointments  map[int64]appointments.Appointment

	// secuencias por entidad, como BIGSERIAL
	clientSeq       int64
	animalSeq       int64
	veterinarianSeq int64
	appointmentSeq  int64
}

func NewStore() *Store {
	return &Store{
		clients:       make(map[int64]clients.Client),
		animals:       make(map[int64]animals.Animal),
		veterinarians: make(map[int64]veterinarians.Veterinarian),
		appointments:  make(map[int64]appointments.Appointment),
	}
}

func (s *Store) Clients() clients.Repository { return &clientRepo{s: s} }

func (s *Store) Animals() animals.Repository { return &animalRepo{s: s} }

func (s *Store) Veterinarians() veterinarians.Repository { return &veterinarianRepo{s: s} }

func (s *Store) Appointments() appointments.Repository { return &appointmentRepo{s: s} }

// deleteAppointmentsWhere borra los turnos que cumplen match. Requiere s.mu tomado.
func (s *Store) deleteAppointmentsWhere(match func(appointments.Appointment) bool) {
	for id, a := range s.appointments {
		if match(a) {
			delete(s.appointments, id)
		}
	}
}

// deleteAnimal borra el animal y sus turnos. Requiere s.mu tomado.
func (s *Store) deleteAnimal(id int64) {
	delete(s.animals, id)
	s.deleteAppointmentsWhere(func(a appointments.Appointment) bool { return a.AnimalID == id })
}
