package bill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"billing-app/internal/domain"
	billrepo "billing-app/internal/repository/bill"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Service builds bill aggregates from caller input and drives their
// persistence. All amount fields are derived here; whatever the caller sends
// for totals is ignored.
type Service struct {
	repo billrepo.Repository
	now  func() time.Time
}

// New creates a Service.
func New(repo billrepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ItemInput is one requested line item.
type ItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Input captures the caller-settable bill fields. BillDate and DueDate are
// YYYY-MM-DD; both default when empty (today and bill date + 30 days). An
// empty BillNumber means the store allocates the next monthly number.
type Input struct {
	BillNumber string      `json:"billNumber"`
	CustomerID int64       `json:"customerId"`
	BillDate   string      `json:"billDate"`
	DueDate    string      `json:"dueDate"`
	Status     string      `json:"status"`
	Notes      string      `json:"notes"`
	Items      []ItemInput `json:"items"`
}

// Create persists a new bill with its items.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Bill, error) {
	b, err := s.build(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, b)
}

// Update rewrites a bill and replaces its full item set. When the caller
// leaves BillNumber empty the stored number is kept.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Bill, error) {
	b, err := s.build(in)
	if err != nil {
		return nil, err
	}
	if b.BillNumber == "" {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		b.BillNumber = existing.BillNumber
	}
	b.ID = id
	return s.repo.Update(ctx, b)
}

// Delete removes a bill together with its items.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Get fetches a bill with its items.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Bill, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus moves a bill to the given payment status.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) error {
	st := domain.BillStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !st.Valid() {
		return fmt.Errorf("status %q: %w", status, domain.ErrInvalidInput)
	}
	return s.repo.UpdateStatus(ctx, id, st)
}

// List returns bill summaries joined to their customers, newest first. A
// non-empty term narrows the result to bill-number or customer-name matches.
func (s *Service) List(ctx context.Context, term string) ([]domain.BillSummary, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, term)
}

// ListByCustomer returns one customer's bills, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.BillSummary, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) build(in Input) (domain.Bill, error) {
	if in.CustomerID <= 0 {
		return domain.Bill{}, fmt.Errorf("customer required: %w", domain.ErrInvalidInput)
	}

	status := domain.StatusPending
	if strings.TrimSpace(in.Status) != "" {
		status = domain.BillStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
		if !status.Valid() {
			return domain.Bill{}, fmt.Errorf("status %q: %w", in.Status, domain.ErrInvalidInput)
		}
	}

	billDate := s.now()
	if in.BillDate != "" {
		parsed, err := time.Parse(dateLayout, in.BillDate)
		if err != nil {
			return domain.Bill{}, fmt.Errorf("bill date %q: %w", in.BillDate, domain.ErrInvalidInput)
		}
		billDate = parsed
	}
	dueDate := billDate.AddDate(0, 0, 30)
	if in.DueDate != "" {
		parsed, err := time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return domain.Bill{}, fmt.Errorf("due date %q: %w", in.DueDate, domain.ErrInvalidInput)
		}
		dueDate = parsed
	}

	b := domain.Bill{
		BillNumber: strings.TrimSpace(in.BillNumber),
		CustomerID: in.CustomerID,
		BillDate:   billDate,
		DueDate:    dueDate,
		Status:     status,
		Notes:      in.Notes,
	}
	for i, item := range in.Items {
		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			return domain.Bill{}, fmt.Errorf("item %d: description required: %w", i, domain.ErrInvalidInput)
		}
		if item.Quantity.Sign() <= 0 {
			return domain.Bill{}, fmt.Errorf("item %d: quantity must be positive: %w", i, domain.ErrInvalidInput)
		}
		if item.UnitPrice.Sign() < 0 {
			return domain.Bill{}, fmt.Errorf("item %d: unit price cannot be negative: %w", i, domain.ErrInvalidInput)
		}
		b.AddItem(desc, item.Quantity, item.UnitPrice)
	}
	b.RecalculateTotals()
	return b, nil
}
