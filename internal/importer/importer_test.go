package importer

import (
	"context"
	"strings"
	"testing"

	"billing-app/internal/domain"
)

type stubCustomerRepo struct {
	items []domain.Customer
}

func (s *stubCustomerRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	c.ID = int64(len(s.items) + 1)
	s.items = append(s.items, c)
	return &c, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,email,phone,address
Acme Co,a@acme.com,555-0100,1 Acme Way
,,,
Beta LLC,info@beta.example,,`

	repo := &stubCustomerRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 customers imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 customers saved, got %d", len(repo.items))
	}
	if repo.items[0].Name != "Acme Co" || repo.items[0].Email != "a@acme.com" || repo.items[0].Phone != "555-0100" {
		t.Fatalf("unexpected customer data: %+v", repo.items[0])
	}
	if repo.items[1].Name != "Beta LLC" {
		t.Fatalf("unexpected second customer: %+v", repo.items[1])
	}
}

func TestCSVImporter_ReordersColumns(t *testing.T) {
	csvData := `Email,Name
a@acme.com,Acme Co`

	repo := &stubCustomerRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 1 || repo.items[0].Name != "Acme Co" || repo.items[0].Email != "a@acme.com" {
		t.Fatalf("unexpected result count=%d items=%+v", count, repo.items)
	}
}

func TestCSVImporter_RejectsRowWithoutName(t *testing.T) {
	csvData := `name,email
Acme Co,a@acme.com
,orphan@example.com`

	repo := &stubCustomerRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error for nameless row")
	}
	if count != 1 {
		t.Fatalf("expected 1 imported before failure, got %d", count)
	}
}

func TestCSVImporter_RequiresNameColumn(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("email\na@acme.com\n"), &stubCustomerRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing name column")
	}
}
