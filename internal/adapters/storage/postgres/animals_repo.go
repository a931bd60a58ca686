package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic-api/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const selectAnimals = `
	SELECT
		a.id, a.owner_id,
		a.name, a.species, a.breed, a.age,
		a.created_at,
		c.name, c.phone
	FROM animals a
	JOIN clients c ON c.id = a.owner_id
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO animals (owner_id, name, species, breed, age, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`,
		a.OwnerID,
		a.Name,
		a.Species,
		a.Breed,
		toNullInt(a.Age),
		a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isForeignKeyViolation(err, "animals_owner_id_fkey") {
			return animals.Animal{}, animals.ErrOwnerNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, selectAnimals+` WHERE a.id = $1`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, selectAnimals+` ORDER BY a.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete: los turnos del animal caen por ON DELETE CASCADE.
func (r *AnimalsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var a animals.Animal
	var age sql.NullInt32
	owner := &animals.Owner{}
	if err := s.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Name,
		&a.Species,
		&a.Breed,
		&age,
		&a.CreatedAt,
		&owner.Name,
		&owner.Phone,
	); err != nil {
		return animals.Animal{}, err
	}

	if age.Valid {
		v := int(age.Int32)
		a.Age = &v
	}
	owner.ID = a.OwnerID
	a.Owner = owner
	return a, nil
}

// age es opcional
func toNullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{Valid: false}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}
