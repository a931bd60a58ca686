package appointments

import "time"

// Appointment es un turno: un animal con un veterinario en una fecha y hora.
// No hay estados: existe o fue cancelado (borrado).
type Appointment struct {
	ID int64

	Date   string // YYYY-MM-DD, tal cual lo mandó el cliente
	Time   string // HH:mm
	Reason string

	AnimalID       int64
	VeterinarianID int64

	CreatedAt time.Time

	// Solo cargados en lecturas (Get / List).
	Animal       *AnimalRef
	Veterinarian *VeterinarianRef
}

type AnimalRef struct {
	ID      int64
	Name    string
	Species string
	Owner   *OwnerRef
}

type OwnerRef struct {
	ID    int64
	Name  string
	Phone string
}

type VeterinarianRef struct {
	ID            int64
	Name          string
	LicenseNumber string
	Specialty     string
}
