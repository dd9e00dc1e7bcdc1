package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"billing-app/internal/domain"
	billrepo "billing-app/internal/repository/bill"
	custrepo "billing-app/internal/repository/customer"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type itemSeed struct {
	Description string
	Quantity    string
	UnitPrice   string
}

type customerSeed struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Items   []itemSeed
}

// Apply inserts basic demo data for manual testing. It is idempotent:
// customers are matched by email and a demo bill is only created for
// customers that have no bills yet.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	customers := custrepo.NewPostgres(pool, nil)
	bills := billrepo.NewPostgres(pool, nil)

	seeds := []customerSeed{
		{
			Name:    "Acme Co",
			Email:   "billing@acme.example",
			Phone:   "555-0100",
			Address: "1 Acme Way",
			Items: []itemSeed{
				{Description: "Widget", Quantity: "2", UnitPrice: "10.00"},
				{Description: "Gadget", Quantity: "1", UnitPrice: "5.00"},
			},
		},
		{
			Name:    "Globex Corporation",
			Email:   "accounts@globex.example",
			Phone:   "555-0142",
			Address: "15 Hammock Rd",
			Items: []itemSeed{
				{Description: "Consulting (hours)", Quantity: "12.5", UnitPrice: "80.00"},
			},
		},
	}

	for _, s := range seeds {
		customerID, err := ensureCustomer(ctx, pool, customers, s)
		if err != nil {
			return fmt.Errorf("ensure customer %s: %w", s.Name, err)
		}

		existing, err := bills.ListByCustomer(ctx, customerID)
		if err != nil {
			return fmt.Errorf("list bills for %s: %w", s.Name, err)
		}
		if len(existing) > 0 {
			continue
		}

		b := domain.Bill{
			CustomerID: customerID,
			BillDate:   time.Now(),
			DueDate:    time.Now().AddDate(0, 0, 30),
			Status:     domain.StatusPending,
			Notes:      "demo data",
		}
		for _, item := range s.Items {
			qty, err := decimal.NewFromString(item.Quantity)
			if err != nil {
				return fmt.Errorf("seed item %s: %w", item.Description, err)
			}
			price, err := decimal.NewFromString(item.UnitPrice)
			if err != nil {
				return fmt.Errorf("seed item %s: %w", item.Description, err)
			}
			b.AddItem(item.Description, qty, price)
		}
		if _, err := bills.Create(ctx, b); err != nil {
			return fmt.Errorf("create demo bill for %s: %w", s.Name, err)
		}
	}

	return nil
}

func ensureCustomer(ctx context.Context, pool *pgxpool.Pool, repo custrepo.Repository, s customerSeed) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM customers WHERE email = $1`, s.Email).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	created, err := repo.Create(ctx, domain.Customer{
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: s.Address,
	})
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}
