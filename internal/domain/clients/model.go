package clients

import "time"

// Client es el tutor/dueño registrado en la clínica.
type Client struct {
	ID int64

	Name    string
	Phone   string
	Email   string
	Address string // opcional

	CreatedAt time.Time
}
