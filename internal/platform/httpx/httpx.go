// Package httpx junta los helpers HTTP que comparten los módulos de dominio:
// encode/decode JSON, el sobre de error {"error","details"} y el parseo de ids.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"vet-clinic-api/internal/platform/apperr"
)

const maxBodyBytes = 1 << 20

// ErrorResponse es el sobre de error de toda la API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse se usa en operaciones sin recurso que devolver (p.ej. cancelar).
type MessageResponse struct {
	Message string `json:"message"`
}

var errInvalidJSON = apperr.Validation("invalid json")

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError traduce err a status + sobre de error.
// Los errores inesperados se loguean y el cliente solo ve "internal error".
func WriteError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		// si el request trae logger propio (con request_id), se usa ese
		if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
			log = *l
		}
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("unhandled error")
		WriteJSON(w, status, ErrorResponse{Error: "internal error"})
		return
	}

	WriteJSON(w, status, ErrorResponse{
		Error:   apperr.Message(err),
		Details: apperr.Details(err),
	})
}

// DecodeJSON decodifica el body en dst. Body vacío, JSON roto o datos de más
// después del objeto => ValidationError.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errInvalidJSON.WithDetails("empty body")
		}
		return errInvalidJSON.WithDetails(err.Error())
	}
	// un solo valor JSON por body
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidJSON.WithDetails("unexpected data after json value")
	}
	return nil
}

// ID acepta tanto 7 como "7" en JSON: los formularios HTML mandan strings.
// null, "" y ausente quedan en 0 (= no enviado).
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = 0
		return nil
	}
	kind := "number"
	if strings.HasPrefix(s, `"`) {
		kind = "string"
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*id = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// el decoder completa Struct y Field, así el mensaje nombra el campo
		return &json.UnmarshalTypeError{Value: kind, Type: reflect.TypeOf(int64(0))}
	}
	*id = ID(n)
	return nil
}

var errInvalidID = apperr.Validation("invalid id")

// URLParamID lee un id numérico positivo de la ruta chi.
func URLParamID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, errInvalidID.WithDetails(name + " must be a positive integer")
	}
	return n, nil
}
