package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic-api/internal/domain/clients"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) (clients.Client, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO clients (name, phone, email, address, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`,
		c.Name,
		c.Phone,
		c.Email,
		c.Address,
		c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return clients.Client{}, err
	}
	return c, nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id int64) (clients.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, address, created_at
		FROM clients
		WHERE id = $1
	`, id)

	var c clients.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return clients.Client{}, clients.ErrNotFound
		}
		return clients.Client{}, err
	}
	return c, nil
}

func (r *ClientsRepo) List(ctx context.Context) ([]clients.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, email, address, created_at
		FROM clients
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		var c clients.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete: animales y turnos caen por ON DELETE CASCADE.
func (r *ClientsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clients.ErrNotFound
	}
	return nil
}
