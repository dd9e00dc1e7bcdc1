package bill

import (
	"context"

	"billing-app/internal/domain"
)

// Repository persists bills together with their line items. Multi-row writes
// (header plus items) always happen inside a single transaction.
type Repository interface {
	// Create inserts the bill header and every item, allocating the next
	// bill number for the current month when b.BillNumber is empty.
	Create(ctx context.Context, b domain.Bill) (*domain.Bill, error)
	// Update rewrites the header and replaces the full item set.
	Update(ctx context.Context, b domain.Bill) (*domain.Bill, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Bill, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BillStatus) error

	List(ctx context.Context) ([]domain.BillSummary, error)
	Search(ctx context.Context, term string) ([]domain.BillSummary, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.BillSummary, error)
}
