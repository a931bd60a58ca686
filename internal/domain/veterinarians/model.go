package veterinarians

import "time"

type Veterinarian struct {
	ID int64

	Name          string
	Phone         string
	LicenseNumber string // único en todo el sistema (CRMV)
	Specialty     string // opcional

	CreatedAt time.Time
}
