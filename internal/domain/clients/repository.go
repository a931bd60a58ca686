package clients

import "context"

// Repository es el puerto de persistencia de clientes.
// Delete borra en cascada los animales del cliente (y sus turnos).
type Repository interface {
	Create(ctx context.Context, c Client) (Client, error)
	GetByID(ctx context.Context, id int64) (Client, error)
	List(ctx context.Context) ([]Client, error)
	Delete(ctx context.Context, id int64) error
}
