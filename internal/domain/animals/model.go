package animals

import "time"

// Animal es la mascota/paciente. Siempre pertenece a un cliente (OwnerID).
type Animal struct {
	ID      int64
	OwnerID int64

	Name    string
	Species string
	Breed   string // opcional
	Age     *int   // opcional, >= 0

	CreatedAt time.Time

	// Owner solo viene cargado en lecturas (GetByID / List).
	Owner *Owner
}

// Owner es el resumen del cliente dueño que se embebe en los listados.
type Owner struct {
	ID    int64
	Name  string
	Phone string
}
