package customer

import (
	"context"
	"fmt"
	"strings"

	"billing-app/internal/domain"
	custrepo "billing-app/internal/repository/customer"
)

// Service handles customer maintenance on behalf of the UI collaborator.
type Service struct {
	repo custrepo.Repository
}

// New creates a Service.
func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input captures the caller-settable customer fields.
type Input struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (in Input) toCustomer() (domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Customer{}, fmt.Errorf("name required: %w", domain.ErrInvalidInput)
	}
	return domain.Customer{
		Name:    name,
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}, nil
}

// Create registers a new customer and returns it with the store-assigned
// identity and creation timestamp.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Customer, error) {
	c, err := in.toCustomer()
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

// Update rewrites an existing customer's contact fields.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Customer, error) {
	c, err := in.toCustomer()
	if err != nil {
		return nil, err
	}
	c.ID = id
	return s.repo.Update(ctx, c)
}

// Delete removes a customer. Customers that still own bills are refused.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Get fetches one customer by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all customers ordered by name. A non-empty term narrows the
// result to case-insensitive containment matches on name, email or phone.
func (s *Service) List(ctx context.Context, term string) ([]domain.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, term)
}
