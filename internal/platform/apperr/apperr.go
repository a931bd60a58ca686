// Package apperr define los tipos de error que cruzan capas (servicio -> HTTP).
//
// Cada error lleva un Kind; el handler HTTP solo mira el Kind para decidir el
// status code, nunca el mensaje.
package apperr

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
)

// Sentinels por kind: errors.Is(err, apperr.ErrNotFound) es true para
// cualquier *Error con KindNotFound.
var (
	ErrValidation = &Error{Kind: KindValidation, Message: "validation error"}
	ErrNotFound   = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict   = &Error{Kind: KindConflict, Message: "conflict"}
)

type Error struct {
	Kind    Kind
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString(": ")
		b.WriteString(e.Details)
	}
	if e.Err != nil {
		if cause := e.Err.Error(); cause != "" {
			b.WriteString(": ")
			b.WriteString(cause)
		}
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind contra los sentinels, y por identidad en el resto.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	switch t {
	case ErrValidation, ErrNotFound, ErrConflict:
		return e.Kind == t.Kind
	}
	return e == t
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// WithDetails devuelve una copia con detalles; el original (normalmente un
// sentinel de paquete) no se modifica.
func (e *Error) WithDetails(details string) *Error {
	cp := *e
	cp.Details = details
	cp.Err = &sentinelCause{sentinel: e, cause: e.Err}
	return &cp
}

// Wrap devuelve una copia que envuelve la causa.
// errors.Is(copia, original) sigue siendo true.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = &sentinelCause{sentinel: e, cause: err}
	return &cp
}

// sentinelCause permite que una copia siga matcheando al sentinel del que salió.
type sentinelCause struct {
	sentinel *Error
	cause    error
}

func (s *sentinelCause) Error() string {
	if s.cause == nil {
		return ""
	}
	return s.cause.Error()
}

func (s *sentinelCause) Is(target error) bool { return target == s.sentinel }

func (s *sentinelCause) Unwrap() error { return s.cause }

// KindOf devuelve el Kind del primer *Error de la cadena, o "" si no hay.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Details devuelve los detalles del primer *Error de la cadena.
func Details(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return ""
}

// Message devuelve el mensaje (sin detalles) del primer *Error de la cadena.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
