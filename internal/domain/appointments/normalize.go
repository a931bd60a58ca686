package appointments

import (
	"strings"
	"time"
)

// CombinedForm es la forma actual del formulario: fecha y hora juntas.
type CombinedForm struct {
	DateTime       string // "YYYY-MM-DDTHH:mm[:ss]"
	AnimalID       int64
	VeterinarianID int64
	Reason         string
}

// LegacyForm es la forma vieja: fecha y hora por separado.
type LegacyForm struct {
	Date           string
	Time           string
	AnimalID       int64
	VeterinarianID int64
	Notes          string
}

// ScheduleRequest admite una o ambas formas. Cualquiera puede ser nil.
type ScheduleRequest struct {
	Combined *CombinedForm
	Legacy   *LegacyForm
}

// Slot es la forma canónica con la que trabaja el servicio.
type Slot struct {
	Date           string
	Time           string
	AnimalID       int64
	VeterinarianID int64
	Reason         string
}

// Normalize lleva cualquiera de las dos formas a un Slot.
//
// Campo a campo gana la forma combinada; un valor vacío o cero cuenta como
// ausente. Si hay date_time, date y time salen de ahí (y no de la forma vieja):
// fecha = lo anterior a la T, hora = los 5 caracteres siguientes. No se
// convierte zona horaria: los dígitos que mandó el cliente son el turno.
func Normalize(req ScheduleRequest) Slot {
	var c CombinedForm
	var l LegacyForm
	if req.Combined != nil {
		c = *req.Combined
	}
	if req.Legacy != nil {
		l = *req.Legacy
	}

	var s Slot
	if dt := strings.TrimSpace(c.DateTime); dt != "" {
		s.Date, s.Time = splitDateTime(dt)
	} else {
		s.Date = strings.TrimSpace(l.Date)
		s.Time = strings.TrimSpace(l.Time)
	}

	s.AnimalID = firstID(c.AnimalID, l.AnimalID)
	s.VeterinarianID = firstID(c.VeterinarianID, l.VeterinarianID)

	s.Reason = c.Reason
	if s.Reason == "" {
		s.Reason = l.Notes
	}
	return s
}

func splitDateTime(dt string) (date, hhmm string) {
	date, rest, found := strings.Cut(dt, "T")
	if !found || rest == "" {
		return date, "00:00"
	}
	if len(rest) > 5 {
		rest = rest[:5]
	}
	return date, rest
}

func firstID(ids ...int64) int64 {
	for _, id := range ids {
		if id != 0 {
			return id
		}
	}
	return 0
}

// Validate controla presencia y formato de los campos del slot.
func (s Slot) Validate() error {
	var missing []string
	if s.Date == "" {
		missing = append(missing, "date")
	}
	if s.Time == "" {
		missing = append(missing, "time")
	}
	if s.AnimalID == 0 {
		missing = append(missing, "animal_id")
	}
	if s.VeterinarianID == 0 {
		missing = append(missing, "veterinarian_id")
	}
	if len(missing) > 0 {
		return ErrMissingFields.WithDetails("missing: " + strings.Join(missing, ", "))
	}

	var invalid []string
	if !validDate(s.Date) {
		invalid = append(invalid, "date must be YYYY-MM-DD")
	}
	if !validTime(s.Time) {
		invalid = append(invalid, "time must be HH:mm")
	}
	if s.AnimalID < 0 {
		invalid = append(invalid, "animal_id must be a positive integer")
	}
	if s.VeterinarianID < 0 {
		invalid = append(invalid, "veterinarian_id must be a positive integer")
	}
	if len(invalid) > 0 {
		return ErrInvalidInput.WithDetails(strings.Join(invalid, "; "))
	}
	return nil
}

func validDate(d string) bool {
	if len(d) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}

func validTime(t string) bool {
	if len(t) != len("15:04") {
		return false
	}
	_, err := time.Parse("15:04", t)
	return err == nil
}
