package animals

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"vet-clinic-api/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, log zerolog.Logger) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc, log))
		ar.Get("/", listAnimalsHandler(svc, log))
		ar.Get("/{animalID}", getAnimalHandler(svc, log))
	})
}

type createAnimalRequest struct {
	Name    string   `json:"name"`
	Species string   `json:"species"`
	Breed   string   `json:"breed"`
	Age     *int     `json:"age" minimum:"0" maximum:"200"`
	OwnerID httpx.ID `json:"owner_id" swaggertype:"integer"`
}

type ownerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type animalResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Species   string         `json:"species"`
	Breed     string         `json:"breed"`
	Age       *int           `json:"age"`
	OwnerID   int64          `json:"owner_id"`
	Owner     *ownerResponse `json:"owner,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Registra un animal para un cliente existente. name y species son obligatorios; owner_id debe existir.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "owner not found"
// @Router /animals [post]
func createAnimalHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Name:    req.Name,
			Species: req.Species,
			Breed:   req.Breed,
			Age:     req.Age,
			OwnerID: int64(req.OwnerID),
		})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Lista todos los animales con el resumen de su dueño.
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /animals [get]
func listAnimalsHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getAnimalHandler godoc
// @Summary Obtener animal
// @Tags animals
// @Produce json
// @Param animalID path int true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.URLParamID(r, "animalID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	out := animalResponse{
		ID:        a.ID,
		Name:      a.Name,
		Species:   a.Species,
		Breed:     a.Breed,
		Age:       a.Age,
		OwnerID:   a.OwnerID,
		CreatedAt: a.CreatedAt,
	}
	if a.Owner != nil {
		out.Owner = &ownerResponse{
			ID:    a.Owner.ID,
			Name:  a.Owner.Name,
			Phone: a.Owner.Phone,
		}
	}
	return out
}
