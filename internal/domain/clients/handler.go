package clients

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"vet-clinic-api/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, log zerolog.Logger) {
	r.Route("/clients", func(cr chi.Router) {
		cr.Post("/", createClientHandler(svc, log))
		cr.Get("/", listClientsHandler(svc, log))
		cr.Get("/{clientID}", getClientHandler(svc, log))
	})
}

type createClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type clientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// createClientHandler godoc
// @Summary Registrar cliente
// @Description Registra un nuevo cliente (tutor). name, phone y email son obligatorios; email debe ser válido.
// @Tags clients
// @Accept json
// @Produce json
// @Param payload body createClientRequest true "Datos del cliente"
// @Success 201 {object} clientResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /clients [post]
func createClientHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClientRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Email:   req.Email,
			Address: req.Address,
		})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toClientResponse(c))
	}
}

// listClientsHandler godoc
// @Summary Listar clientes
// @Tags clients
// @Produce json
// @Success 200 {array} clientResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /clients [get]
func listClientsHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		out := make([]clientResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toClientResponse(c))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getClientHandler godoc
// @Summary Obtener cliente
// @Tags clients
// @Produce json
// @Param clientID path int true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /clients/{clientID} [get]
func getClientHandler(svc *Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.URLParamID(r, "clientID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		c, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toClientResponse(c))
	}
}

func toClientResponse(c Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
