package memory

import (
	"context"
	"sort"

	"vet-clinic-api/internal/domain/animals"
)

type animalRepo struct {
	s *Store
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.clients[a.OwnerID]; !ok {
		return animals.Animal{}, animals.ErrOwnerNotFound
	}

	r.s.animalSeq++
	a.ID = r.s.animalSeq
	a.Owner = nil
	r.s.animals[a.ID] = a
	return a, nil
}

func (r *animalRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.animals[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return r.withOwner(a), nil
}

func (r *animalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.s.animals))
	for _, a := range r.s.animals {
		out = append(out, r.withOwner(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *animalRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[id]; !ok {
		return animals.ErrNotFound
	}
	r.s.deleteAnimal(id)
	return nil
}

// withOwner carga el resumen del dueño. Requiere s.mu tomado.
func (r *animalRepo) withOwner(a animals.Animal) animals.Animal {
	if c, ok := r.s.clients[a.OwnerID]; ok {
		a.Owner = &animals.Owner{ID: c.ID, Name: c.Name, Phone: c.Phone}
	}
	return a
}
