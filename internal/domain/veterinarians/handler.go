package veterinarians

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"vet-clinic-api/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, log zerolog.Logger) {
	r.Route("/veterinarians", func(vr chi.Router) {
		vr.Post("/", createVeterinarianHandler(svc, log))
		vr.Get("/", listVeterinariansHandler(svc, log))
		vr.Get("/{veterinarianID}", getVeterinarianHandler(svc, log))
	})
}

type createVeterinarianRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	Specialty     string `json:"specialty"`
}

type veterinarianResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	Specialty     string    `json:"specialty"`
	CreatedAt     time.Time `json:"created_at"`
}

// createVeterinarianHandler godoc
// @Summary Registrar veterinario
// @Description Registra un veterinario. name, phone y license_number son obligatorios; license_number es único.
// @Tags veterinarians
// @Accept json
// @Produce json
// @Param payload body createVeterinarianRequest true "Datos del veterinario"
// @Success 201 {object} veterinarianResponse
// @Failure 400 {object} httpx.ErrorResponse "campos faltantes o license_number duplicado"
// @Router /veterinarians [post]
func createVeterinarianHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVeterinarianRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			Name:          req.Name,
			Phone:         req.Phone,
			LicenseNumber: req.LicenseNumber,
			Specialty:     req.Specialty,
		})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toVeterinarianResponse(v))
	}
}

// listVeterinariansHandler godoc
// @Summary Listar veterinarios
// @Tags veterinarians
// @Produce json
// @Success 200 {array} veterinarianResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /veterinarians [get]
func listVeterinariansHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		out := make([]veterinarianResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVeterinarianResponse(v))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getVeterinarianHandler godoc
// @Summary Obtener veterinario
// @Tags veterinarians
// @Produce json
// @Param veterinarianID path int true "ID del veterinario"
// @Success 200 {object} veterinarianResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /veterinarians/{veterinarianID} [get]
func getVeterinarianHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.URLParamID(r, "veterinarianID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toVeterinarianResponse(v))
	}
}

func toVeterinarianResponse(v Veterinarian) veterinarianResponse {
	return veterinarianResponse{
		ID:            v.ID,
		Name:          v.Name,
		Phone:         v.Phone,
		LicenseNumber: v.LicenseNumber,
		Specialty:     v.Specialty,
		CreatedAt:     v.CreatedAt,
	}
}
