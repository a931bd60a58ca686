package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"vet-clinic-api/internal/platform/httpx"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con zerolog y responde
// con el mismo sobre de error que el resto de la API.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			zerolog.Ctx(r.Context()).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("panic recovered")
			httpx.WriteJSON(w, http.StatusInternalServerError, httpx.ErrorResponse{Error: "internal error"})
		}()

		next.ServeHTTP(w, r)
	})
}
