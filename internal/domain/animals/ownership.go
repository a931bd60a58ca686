package animals

import "context"

// OwnerLookup evita importar el paquete clients (rompe ciclos).
type OwnerLookup interface {
	Exists(ctx context.Context, clientID int64) (bool, error)
}
