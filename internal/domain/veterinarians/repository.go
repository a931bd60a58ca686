package veterinarians

import "context"

// Repository es el puerto de persistencia de veterinarios.
// Create devuelve ErrDuplicateLicense si license_number ya existe.
// Delete borra en cascada los turnos del veterinario.
type Repository interface {
	Create(ctx context.Context, v Veterinarian) (Veterinarian, error)
	GetByID(ctx context.Context, id int64) (Veterinarian, error)
	FindByLicense(ctx context.Context, licenseNumber string) (Veterinarian, error)
	List(ctx context.Context) ([]Veterinarian, error)
	Delete(ctx context.Context, id int64) error
}
