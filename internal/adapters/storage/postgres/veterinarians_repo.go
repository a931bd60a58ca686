package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic-api/internal/domain/veterinarians"
)

type VeterinariansRepo struct {
	db *sql.DB
}

func NewVeterinariansRepo(db *sql.DB) *VeterinariansRepo {
	return &VeterinariansRepo{db: db}
}

const selectVeterinarians = `
	SELECT id, name, phone, license_number, specialty, created_at
	FROM veterinarians
`

func (r *VeterinariansRepo) Create(ctx context.Context, v veterinarians.Veterinarian) (veterinarians.Veterinarian, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO veterinarians (name, phone, license_number, specialty, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`,
		v.Name,
		v.Phone,
		v.LicenseNumber,
		v.Specialty,
		v.CreatedAt,
	).Scan(&v.ID)
	if err != nil {
		if isUniqueViolation(err, "veterinarians_license_number_key") {
			return veterinarians.Veterinarian{}, veterinarians.ErrDuplicateLicense
		}
		return veterinarians.Veterinarian{}, err
	}
	return v, nil
}

func (r *VeterinariansRepo) GetByID(ctx context.Context, id int64) (veterinarians.Veterinarian, error) {
	return r.getOne(ctx, selectVeterinarians+` WHERE id = $1`, id)
}

func (r *VeterinariansRepo) FindByLicense(ctx context.Context, license string) (veterinarians.Veterinarian, error) {
	return r.getOne(ctx, selectVeterinarians+` WHERE license_number = $1`, license)
}

func (r *VeterinariansRepo) getOne(ctx context.Context, query string, arg any) (veterinarians.Veterinarian, error) {
	v, err := scanVeterinarian(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return veterinarians.Veterinarian{}, veterinarians.ErrNotFound
		}
		return veterinarians.Veterinarian{}, err
	}
	return v, nil
}

func (r *VeterinariansRepo) List(ctx context.Context) ([]veterinarians.Veterinarian, error) {
	rows, err := r.db.QueryContext(ctx, selectVeterinarians+` ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]veterinarians.Veterinarian, 0)
	for rows.Next() {
		v, err := scanVeterinarian(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VeterinariansRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM veterinarians WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return veterinarians.ErrNotFound
	}
	return nil
}

func scanVeterinarian(s scanner) (veterinarians.Veterinarian, error) {
	var v veterinarians.Veterinarian
	err := s.Scan(&v.ID, &v.Name, &v.Phone, &v.LicenseNumber, &v.Specialty, &v.CreatedAt)
	return v, err
}
