package animals

import "context"

// Repository es el puerto de persistencia de animales.
// Create devuelve ErrOwnerNotFound si el cliente no existe (FK) y no carga Owner;
// GetByID y List sí lo embeben.
// Delete borra en cascada los turnos del animal.
type Repository interface {
	Create(ctx context.Context, a Animal) (Animal, error)
	GetByID(ctx context.Context, id int64) (Animal, error)
	List(ctx context.Context) ([]Animal, error)
	Delete(ctx context.Context, id int64) error
}
