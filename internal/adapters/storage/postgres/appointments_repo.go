package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vet-clinic-api/internal/domain/appointments"
)

const dateLayout = "2006-01-02"

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const selectAppointments = `
	SELECT
		ap.id, ap.date, ap.time, ap.reason,
		ap.animal_id, ap.veterinarian_id, ap.created_at,
		an.name, an.species,
		c.id, c.name, c.phone,
		v.name, v.license_number, v.specialty
	FROM appointments ap
	JOIN animals an ON an.id = ap.animal_id
	JOIN clients c ON c.id = an.owner_id
	JOIN veterinarians v ON v.id = ap.veterinarian_id
`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	date, err := time.Parse(dateLayout, a.Date)
	if err != nil {
		return appointments.Appointment{}, appointments.ErrInvalidInput.WithDetails("date must be YYYY-MM-DD")
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO appointments (date, time, reason, animal_id, veterinarian_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`,
		date,
		a.Time,
		a.Reason,
		a.AnimalID,
		a.VeterinarianID,
		a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err, "appointments_slot_key"):
			return appointments.Appointment{}, appointments.ErrConflict
		case isForeignKeyViolation(err, "appointments_animal_id_fkey"):
			return appointments.Appointment{}, appointments.ErrAnimalNotFound
		case isForeignKeyViolation(err, "appointments_veterinarian_id_fkey"):
			return appointments.Appointment{}, appointments.ErrVeterinarianNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRowContext(ctx, selectAppointments+` WHERE ap.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) FindBySlot(ctx context.Context, vetID int64, date, hhmm string) (appointments.Appointment, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	a, err := scanAppointment(r.db.QueryRowContext(ctx, selectAppointments+`
		WHERE ap.veterinarian_id = $1 AND ap.date = $2 AND ap.time = $3
	`, vetID, d, hhmm))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, selectAppointments+` ORDER BY ap.date ASC, ap.time ASC, ap.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var date time.Time
	animal := &appointments.AnimalRef{}
	owner := &appointments.OwnerRef{}
	vet := &appointments.VeterinarianRef{}

	if err := s.Scan(
		&a.ID,
		&date,
		&a.Time,
		&a.Reason,
		&a.AnimalID,
		&a.VeterinarianID,
		&a.CreatedAt,
		&animal.Name,
		&animal.Species,
		&owner.ID,
		&owner.Name,
		&owner.Phone,
		&vet.Name,
		&vet.LicenseNumber,
		&vet.Specialty,
	); err != nil {
		return appointments.Appointment{}, err
	}

	// ojo: DATE llega como time.Time a medianoche UTC; la devolvemos como la recibimos
	a.Date = date.Format(dateLayout)
	animal.ID = a.AnimalID
	animal.Owner = owner
	vet.ID = a.VeterinarianID
	a.Animal = animal
	a.Veterinarian = vet
	return a, nil
}
