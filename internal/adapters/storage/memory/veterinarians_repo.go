package memory

import (
	"context"
	"sort"

	"vet-clinic-api/internal/domain/appointments"
	"vet-clinic-api/internal/domain/veterinarians"
)

type veterinarianRepo struct {
	s *Store
}

func (r *veterinarianRepo) Create(ctx context.Context, v veterinarians.Veterinarian) (veterinarians.Veterinarian, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.veterinarians {
		if existing.LicenseNumber == v.LicenseNumber {
			return veterinarians.Veterinarian{}, veterinarians.ErrDuplicateLicense
		}
	}

	r.s.veterinarianSeq++
	v.ID = r.s.veterinarianSeq
	r.s.veterinarians[v.ID] = v
	return v, nil
}

func (r *veterinarianRepo) GetByID(ctx context.Context, id int64) (veterinarians.Veterinarian, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.veterinarians[id]
	if !ok {
		return veterinarians.Veterinarian{}, veterinarians.ErrNotFound
	}
	return v, nil
}

func (r *veterinarianRepo) FindByLicense(ctx context.Context, license string) (veterinarians.Veterinarian, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, v := range r.s.veterinarians {
		if v.LicenseNumber == license {
			return v, nil
		}
	}
	return veterinarians.Veterinarian{}, veterinarians.ErrNotFound
}

func (r *veterinarianRepo) List(ctx context.Context) ([]veterinarians.Veterinarian, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]veterinarians.Veterinarian, 0, len(r.s.veterinarians))
	for _, v := range r.s.veterinarians {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *veterinarianRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.veterinarians[id]; !ok {
		return veterinarians.ErrNotFound
	}
	delete(r.s.veterinarians, id)
	r.s.deleteAppointmentsWhere(func(a appointments.Appointment) bool { return a.VeterinarianID == id })
	return nil
}
