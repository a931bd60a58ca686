package memory

import (
	"context"
	"sort"

	"vet-clinic-api/internal/domain/appointments"
)

type appointmentRepo struct {
	s *Store
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[a.AnimalID]; !ok {
		return appointments.Appointment{}, appointments.ErrAnimalNotFound
	}
	if _, ok := r.s.veterinarians[a.VeterinarianID]; !ok {
		return appointments.Appointment{}, appointments.ErrVeterinarianNotFound
	}
	if _, taken := r.findBySlot(a.VeterinarianID, a.Date, a.Time); taken {
		return appointments.Appointment{}, appointments.ErrConflict
	}

	r.s.appointmentSeq++
	a.ID = r.s.appointmentSeq
	a.Animal, a.Veterinarian = nil, nil
	r.s.appointments[a.ID] = a
	return r.withRefs(a), nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return r.withRefs(a), nil
}

func (r *appointmentRepo) FindBySlot(ctx context.Context, vetID int64, date, hhmm string) (appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.findBySlot(vetID, date, hhmm)
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

// List ordena por fecha, hora e id. Fecha YYYY-MM-DD y hora HH:mm ordenan
// bien como strings.
func (r *appointmentRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]appointments.Appointment, 0, len(r.s.appointments))
	for _, a := range r.s.appointments {
		out = append(out, r.withRefs(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[id]; !ok {
		return appointments.ErrNotFound
	}
	delete(r.s.appointments, id)
	return nil
}

// Requiere s.mu tomado.
func (r *appointmentRepo) findBySlot(vetID int64, date, hhmm string) (appointments.Appointment, bool) {
	for _, a := range r.s.appointments {
		if a.VeterinarianID == vetID && a.Date == date && a.Time == hhmm {
			return a, true
		}
	}
	return appointments.Appointment{}, false
}

// withRefs embebe animal (con dueño) y veterinario. Requiere s.mu tomado.
func (r *appointmentRepo) withRefs(a appointments.Appointment) appointments.Appointment {
	if an, ok := r.s.animals[a.AnimalID]; ok {
		ref := &appointments.AnimalRef{ID: an.ID, Name: an.Name, Species: an.Species}
		if c, ok := r.s.clients[an.OwnerID]; ok {
			ref.Owner = &appointments.OwnerRef{ID: c.ID, Name: c.Name, Phone: c.Phone}
		}
		a.Animal = ref
	}
	if v, ok := r.s.veterinarians[a.VeterinarianID]; ok {
		a.Veterinarian = &appointments.VeterinarianRef{
			ID:            v.ID,
			Name:          v.Name,
			LicenseNumber: v.LicenseNumber,
			Specialty:     v.Specialty,
		}
	}
	return a
}
