package customer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"billing-app/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const customerColumns = `id, name, email, phone, address, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (name, email, phone, address)
VALUES ($1, $2, $3, $4)
RETURNING ` + customerColumns
	return r.scanCustomer(r.pool.QueryRow(ctx, q, c.Name, c.Email, c.Phone, c.Address))
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET name = $1, email = $2, phone = $3, address = $4
WHERE id = $5
RETURNING ` + customerColumns
	return r.scanCustomer(r.pool.QueryRow(ctx, q, c.Name, c.Email, c.Phone, c.Address, c.ID))
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("customer %d still has bills: %w", id, domain.ErrInvalidInput)
		}
		r.logger.Printf("customer repo: delete id=%d err=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.collectCustomers(rows)
}

func (r *postgresRepo) Search(ctx context.Context, term string) ([]domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE name ILIKE '%' || $1 || '%'
   OR email ILIKE '%' || $1 || '%'
   OR phone ILIKE '%' || $1 || '%'
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q, term)
	if err != nil {
		return nil, err
	}
	return r.collectCustomers(rows)
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			r.logger.Printf("customer repo: scan error=%v", err)
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}
