package memory

import (
	"context"
	"sort"

	"vet-clinic-api/internal/domain/clients"
)

type clientRepo struct {
	s *Store
}

func (r *clientRepo) Create(ctx context.Context, c clients.Client) (clients.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.clientSeq++
	c.ID = r.s.clientSeq
	r.s.clients[c.ID] = c
	return c, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (clients.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clients[id]
	if !ok {
		return clients.Client{}, clients.ErrNotFound
	}
	return c, nil
}

func (r *clientRepo) List(ctx context.Context) ([]clients.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]clients.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete borra el cliente, sus animales y los turnos de esos animales.
func (r *clientRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.clients[id]; !ok {
		return clients.ErrNotFound
	}
	for animalID, a := range r.s.animals {
		if a.OwnerID == id {
			r.s.deleteAnimal(animalID)
		}
	}
	delete(r.s.clients, id)
	return nil
}
