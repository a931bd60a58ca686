package appointments

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"vet-clinic-api/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, log zerolog.Logger) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", scheduleAppointmentHandler(svc, log))
		ar.Get("/", listAppointmentsHandler(svc, log))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc, log))
		ar.Delete("/{appointmentID}", cancelAppointmentHandler(svc, log))
	})
}

// scheduleRequest acepta las dos formas en el mismo body.
// Forma actual: date_time, animal_id, veterinarian_id, reason.
// Forma vieja: date, time, animalId, veterinarianId, notes.
type scheduleRequest struct {
	DateTime       string   `json:"date_time" example:"2024-06-01T09:00"`
	AnimalID       httpx.ID `json:"animal_id" swaggertype:"integer"`
	VeterinarianID httpx.ID `json:"veterinarian_id" swaggertype:"integer"`
	Reason         string   `json:"reason"`

	Date                 string   `json:"date" example:"2024-06-01"`
	Time                 string   `json:"time" example:"09:00"`
	LegacyAnimalID       httpx.ID `json:"animalId" swaggertype:"integer"`
	LegacyVeterinarianID httpx.ID `json:"veterinarianId" swaggertype:"integer"`
	Notes                string   `json:"notes"`
}

func (req scheduleRequest) toScheduleRequest() ScheduleRequest {
	return ScheduleRequest{
		Combined: &CombinedForm{
			DateTime:       req.DateTime,
			AnimalID:       int64(req.AnimalID),
			VeterinarianID: int64(req.VeterinarianID),
			Reason:         req.Reason,
		},
		Legacy: &LegacyForm{
			Date:           req.Date,
			Time:           req.Time,
			AnimalID:       int64(req.LegacyAnimalID),
			VeterinarianID: int64(req.LegacyVeterinarianID),
			Notes:          req.Notes,
		},
	}
}

type ownerRefResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type animalRefResponse struct {
	ID      int64             `json:"id"`
	Name    string            `json:"name"`
	Species string            `json:"species"`
	Owner   *ownerRefResponse `json:"owner,omitempty"`
}

type veterinarianRefResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	Specialty     string `json:"specialty"`
}

type appointmentResponse struct {
	ID             int64                    `json:"id"`
	Date           string                   `json:"date"`
	Time           string                   `json:"time"`
	Reason         string                   `json:"reason"`
	AnimalID       int64                    `json:"animal_id"`
	VeterinarianID int64                    `json:"veterinarian_id"`
	CreatedAt      time.Time                `json:"created_at"`
	Animal         *animalRefResponse       `json:"animal,omitempty"`
	Veterinarian   *veterinarianRefResponse `json:"veterinarian,omitempty"`
}

// scheduleAppointmentHandler godoc
// @Summary Agendar turno
// @Description Agenda un turno. Acepta date_time (YYYY-MM-DDTHH:mm) o date + time por separado; date_time tiene prioridad. Rechaza con 409 si el veterinario ya tiene un turno en ese horario.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body scheduleRequest true "Datos del turno"
// @Success 201 {object} appointmentResponse
// @Failure 400 {object} httpx.ErrorResponse "campos faltantes o con formato inválido"
// @Failure 404 {object} httpx.ErrorResponse "animal o veterinario inexistente"
// @Failure 409 {object} httpx.ErrorResponse "doble reserva"
// @Router /appointments [post]
func scheduleAppointmentHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		a, err := svc.Schedule(r.Context(), req.toScheduleRequest())
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar turnos
// @Description Lista los turnos ordenados por fecha y hora, con animal (y dueño) y veterinario.
// @Tags appointments
// @Produce json
// @Success 200 {array} appointmentResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getAppointmentHandler godoc
// @Summary Obtener turno
// @Tags appointments
// @Produce json
// @Param appointmentID path int true "ID del turno"
// @Success 200 {object} appointmentResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.URLParamID(r, "appointmentID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		a, err := svc.Get(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// cancelAppointmentHandler godoc
// @Summary Cancelar turno
// @Description Borra el turno definitivamente.
// @Tags appointments
// @Produce json
// @Param appointmentID path int true "ID del turno"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /appointments/{appointmentID} [delete]
func cancelAppointmentHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.URLParamID(r, "appointmentID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		if err := svc.Cancel(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "appointment cancelled"})
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	out := appointmentResponse{
		ID:             a.ID,
		Date:           a.Date,
		Time:           a.Time,
		Reason:         a.Reason,
		AnimalID:       a.AnimalID,
		VeterinarianID: a.VeterinarianID,
		CreatedAt:      a.CreatedAt,
	}
	if a.Animal != nil {
		out.Animal = &animalRefResponse{
			ID:      a.Animal.ID,
			Name:    a.Animal.Name,
			Species: a.Animal.Species,
		}
		if o := a.Animal.Owner; o != nil {
			out.Animal.Owner = &ownerRefResponse{ID: o.ID, Name: o.Name, Phone: o.Phone}
		}
	}
	if v := a.Veterinarian; v != nil {
		out.Veterinarian = &veterinarianRefResponse{
			ID:            v.ID,
			Name:          v.Name,
			LicenseNumber: v.LicenseNumber,
			Specialty:     v.Specialty,
		}
	}
	return out
}
