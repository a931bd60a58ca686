package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DTOs del lado cliente. Reflejan el JSON de la API, no los modelos internos.

type ClinicClient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type Owner struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Animal struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed"`
	Age       *int      `json:"age"`
	OwnerID   int64     `json:"owner_id"`
	Owner     *Owner    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Veterinarian struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	Specialty     string    `json:"specialty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AppointmentAnimal struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Owner   *Owner `json:"owner,omitempty"`
}

type AppointmentVeterinarian struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	Specialty     string `json:"specialty"`
}

type Appointment struct {
	ID             int64                    `json:"id"`
	Date           string                   `json:"date"`
	Time           string                   `json:"time"`
	Reason         string                   `json:"reason"`
	AnimalID       int64                    `json:"animal_id"`
	VeterinarianID int64                    `json:"veterinarian_id"`
	CreatedAt      time.Time                `json:"created_at"`
	Animal         *AppointmentAnimal       `json:"animal,omitempty"`
	Veterinarian   *AppointmentVeterinarian `json:"veterinarian,omitempty"`
}

type CreateClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

type CreateAnimalRequest struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`
	Age     *int   `json:"age,omitempty"`
	OwnerID int64  `json:"owner_id"`
}

type CreateVeterinarianRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	Specialty     string `json:"specialty,omitempty"`
}

// ScheduleRequest usa la forma combinada (date_time).
type ScheduleRequest struct {
	DateTime       string `json:"date_time"`
	AnimalID       int64  `json:"animal_id"`
	VeterinarianID int64  `json:"veterinarian_id"`
	Reason         string `json:"reason,omitempty"`
}

func (c *Client) CreateClient(ctx context.Context, in CreateClientRequest) (ClinicClient, error) {
	var out ClinicClient
	err := c.DoJSON(ctx, http.MethodPost, "/clients", nil, in, &out)
	return out, err
}

func (c *Client) ListClients(ctx context.Context) ([]ClinicClient, error) {
	var out []ClinicClient
	err := c.DoJSON(ctx, http.MethodGet, "/clients", nil, nil, &out)
	return out, err
}

func (c *Client) CreateAnimal(ctx context.Context, in CreateAnimalRequest) (Animal, error) {
	var out Animal
	err := c.DoJSON(ctx, http.MethodPost, "/animals", nil, in, &out)
	return out, err
}

func (c *Client) ListAnimals(ctx context.Context) ([]Animal, error) {
	var out []Animal
	err := c.DoJSON(ctx, http.MethodGet, "/animals", nil, nil, &out)
	return out, err
}

func (c *Client) CreateVeterinarian(ctx context.Context, in CreateVeterinarianRequest) (Veterinarian, error) {
	var out Veterinarian
	err := c.DoJSON(ctx, http.MethodPost, "/veterinarians", nil, in, &out)
	return out, err
}

func (c *Client) ListVeterinarians(ctx context.Context) ([]Veterinarian, error) {
	var out []Veterinarian
	err := c.DoJSON(ctx, http.MethodGet, "/veterinarians", nil, nil, &out)
	return out, err
}

// ScheduleAppointment acepta cualquier body (p.ej. la forma vieja en un map).
func (c *Client) ScheduleAppointment(ctx context.Context, in any) (Appointment, error) {
	var out Appointment
	err := c.DoJSON(ctx, http.MethodPost, "/appointments", nil, in, &out)
	return out, err
}

func (c *Client) GetAppointment(ctx context.Context, id int64) (Appointment, error) {
	var out Appointment
	err := c.DoJSON(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d", id), nil, nil, &out)
	return out, err
}

func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	err := c.DoJSON(ctx, http.MethodGet, "/appointments", nil, nil, &out)
	return out, err
}

func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	return c.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil, nil)
}
