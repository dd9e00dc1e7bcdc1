package bill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"billing-app/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// maxNumberAttempts bounds retries when two writers race for the same
// generated bill number; the UNIQUE constraint on bill_number is the arbiter.
const maxNumberAttempts = 3

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

// Amounts travel as text on the wire so that NUMERIC columns round-trip
// exactly into decimal.Decimal.
const billColumns = `id, bill_number, customer_id, bill_date, due_date,
       total_amount::text, tax_amount::text, grand_total::text, status, notes, created_at`

const itemColumns = `id, bill_id, description, quantity::text, unit_price::text, amount::text`

func (r *postgresRepo) Create(ctx context.Context, b domain.Bill) (*domain.Bill, error) {
	generate := b.BillNumber == ""
	for attempt := 1; ; attempt++ {
		created, err := r.create(ctx, b, generate)
		if err == nil {
			return created, nil
		}
		if isPGError(err, "23505") {
			if generate && attempt < maxNumberAttempts {
				continue
			}
			return nil, fmt.Errorf("bill number taken: %w", domain.ErrAlreadyExists)
		}
		if isPGError(err, "23503") {
			return nil, fmt.Errorf("customer %d does not exist: %w", b.CustomerID, domain.ErrInvalidInput)
		}
		r.logger.Printf("bill repo: create err=%v", err)
		return nil, err
	}
}

func (r *postgresRepo) create(ctx context.Context, b domain.Bill, generate bool) (*domain.Bill, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if generate {
		number, err := nextNumber(ctx, tx, domain.BillNumberPrefix(time.Now()))
		if err != nil {
			return nil, err
		}
		b.BillNumber = number
	}

	const q = `
INSERT INTO bills (bill_number, customer_id, bill_date, due_date,
                   total_amount, tax_amount, grand_total, status, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at
`
	if err := tx.QueryRow(ctx, q,
		b.BillNumber,
		b.CustomerID,
		b.BillDate,
		b.DueDate,
		b.TotalAmount.String(),
		b.TaxAmount.String(),
		b.GrandTotal.String(),
		string(b.Status),
		b.Notes,
	).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, err
	}

	items, err := insertItems(ctx, tx, b.ID, b.Items)
	if err != nil {
		return nil, err
	}
	b.Items = items

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) Update(ctx context.Context, b domain.Bill) (*domain.Bill, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE bills
SET bill_number = $1, customer_id = $2, bill_date = $3, due_date = $4,
    total_amount = $5, tax_amount = $6, grand_total = $7, status = $8, notes = $9
WHERE id = $10
RETURNING created_at
`
	if err := tx.QueryRow(ctx, q,
		b.BillNumber,
		b.CustomerID,
		b.BillDate,
		b.DueDate,
		b.TotalAmount.String(),
		b.TaxAmount.String(),
		b.GrandTotal.String(),
		string(b.Status),
		b.Notes,
		b.ID,
	).Scan(&b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, r.mapWriteError(b, err)
	}

	// Replace-all item semantics: drop every prior row and reinsert the
	// current set, all inside the same transaction as the header write.
	if _, err := tx.Exec(ctx, `DELETE FROM bill_items WHERE bill_id = $1`, b.ID); err != nil {
		return nil, err
	}
	items, err := insertItems(ctx, tx, b.ID, b.Items)
	if err != nil {
		return nil, err
	}
	b.Items = items

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The FK cascade would remove items anyway; deleting them explicitly
	// keeps the aggregate's lifecycle visible in one place.
	if _, err := tx.Exec(ctx, `DELETE FROM bill_items WHERE bill_id = $1`, id); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Bill, error) {
	const q = `
SELECT ` + billColumns + `
FROM bills
WHERE id = $1
`
	b, err := r.scanBill(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}

	const itemsQ = `
SELECT ` + itemColumns + `
FROM bill_items
WHERE bill_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, itemsQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.BillItem
		var qty, price, amount string
		if err := rows.Scan(&item.ID, &item.BillID, &item.Description, &qty, &price, &amount); err != nil {
			r.logger.Printf("bill repo: scan item err=%v", err)
			return nil, err
		}
		if item.Quantity, err = decimal.NewFromString(qty); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		if item.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		b.Items = append(b.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status domain.BillStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE bills SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		r.logger.Printf("bill repo: update status id=%d err=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const summaryColumns = `b.id, b.bill_number, b.customer_id, c.name, b.bill_date, b.due_date,
       b.total_amount::text, b.tax_amount::text, b.grand_total::text, b.status, b.created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.BillSummary, error) {
	const q = `
SELECT ` + summaryColumns + `
FROM bills b
JOIN customers c ON b.customer_id = c.id
ORDER BY b.bill_date DESC, b.id DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.collectSummaries(rows)
}

func (r *postgresRepo) Search(ctx context.Context, term string) ([]domain.BillSummary, error) {
	const q = `
SELECT ` + summaryColumns + `
FROM bills b
JOIN customers c ON b.customer_id = c.id
WHERE b.bill_number ILIKE '%' || $1 || '%'
   OR c.name ILIKE '%' || $1 || '%'
ORDER BY b.bill_date DESC, b.id DESC
`
	rows, err := r.pool.Query(ctx, q, term)
	if err != nil {
		return nil, err
	}
	return r.collectSummaries(rows)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.BillSummary, error) {
	const q = `
SELECT ` + summaryColumns + `
FROM bills b
JOIN customers c ON b.customer_id = c.id
WHERE b.customer_id = $1
ORDER BY b.bill_date DESC, b.id DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	return r.collectSummaries(rows)
}

func (r *postgresRepo) scanBill(row pgx.Row) (*domain.Bill, error) {
	var b domain.Bill
	var status, total, tax, grand string
	err := row.Scan(
		&b.ID,
		&b.BillNumber,
		&b.CustomerID,
		&b.BillDate,
		&b.DueDate,
		&total,
		&tax,
		&grand,
		&status,
		&b.Notes,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("bill repo: scan error=%v", err)
		return nil, err
	}
	b.Status = domain.BillStatus(status)
	if b.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	if b.TaxAmount, err = decimal.NewFromString(tax); err != nil {
		return nil, err
	}
	if b.GrandTotal, err = decimal.NewFromString(grand); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) collectSummaries(rows pgx.Rows) ([]domain.BillSummary, error) {
	defer rows.Close()

	summaries := []domain.BillSummary{}
	for rows.Next() {
		var s domain.BillSummary
		var status, total, tax, grand string
		err := rows.Scan(
			&s.ID,
			&s.BillNumber,
			&s.CustomerID,
			&s.CustomerName,
			&s.BillDate,
			&s.DueDate,
			&total,
			&tax,
			&grand,
			&status,
			&s.CreatedAt,
		)
		if err != nil {
			r.logger.Printf("bill repo: scan summary err=%v", err)
			return nil, err
		}
		s.Status = domain.BillStatus(status)
		if s.TotalAmount, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		if s.TaxAmount, err = decimal.NewFromString(tax); err != nil {
			return nil, err
		}
		if s.GrandTotal, err = decimal.NewFromString(grand); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *postgresRepo) mapWriteError(b domain.Bill, err error) error {
	if isPGError(err, "23505") {
		return fmt.Errorf("bill number %s: %w", b.BillNumber, domain.ErrAlreadyExists)
	}
	if isPGError(err, "23503") {
		return fmt.Errorf("customer %d does not exist: %w", b.CustomerID, domain.ErrInvalidInput)
	}
	r.logger.Printf("bill repo: write err=%v", err)
	return err
}

func insertItems(ctx context.Context, tx pgx.Tx, billID int64, items []domain.BillItem) ([]domain.BillItem, error) {
	const q = `
INSERT INTO bill_items (bill_id, description, quantity, unit_price, amount)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	out := make([]domain.BillItem, 0, len(items))
	for _, item := range items {
		item.BillID = billID
		if err := tx.QueryRow(ctx, q,
			billID,
			item.Description,
			item.Quantity.String(),
			item.UnitPrice.String(),
			item.Amount.String(),
		).Scan(&item.ID); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func nextNumber(ctx context.Context, tx pgx.Tx, prefix string) (string, error) {
	const q = `
SELECT COALESCE(MAX(bill_number), '')
FROM bills
WHERE bill_number LIKE $1 || '-%'
`
	var last string
	if err := tx.QueryRow(ctx, q, prefix).Scan(&last); err != nil {
		return "", err
	}
	return domain.NextBillNumber(prefix, last), nil
}

func isPGError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
