package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"billing-app/internal/domain"
	billsvc "billing-app/internal/service/bill"
	custsvc "billing-app/internal/service/customer"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type stubCustomerSvc struct {
	customer *domain.Customer
	list     []domain.Customer
	err      error
	gotInput custsvc.Input
}

func (s *stubCustomerSvc) Create(_ context.Context, in custsvc.Input) (*domain.Customer, error) {
	s.gotInput = in
	return s.customer, s.err
}

func (s *stubCustomerSvc) Update(_ context.Context, _ int64, in custsvc.Input) (*domain.Customer, error) {
	s.gotInput = in
	return s.customer, s.err
}

func (s *stubCustomerSvc) Delete(_ context.Context, _ int64) error { return s.err }

func (s *stubCustomerSvc) Get(_ context.Context, _ int64) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubCustomerSvc) List(_ context.Context, _ string) ([]domain.Customer, error) {
	return s.list, s.err
}

type stubBillSvc struct {
	bill      *domain.Bill
	summaries []domain.BillSummary
	err       error
	gotStatus string
}

func (s *stubBillSvc) Create(_ context.Context, _ billsvc.Input) (*domain.Bill, error) {
	return s.bill, s.err
}

func (s *stubBillSvc) Update(_ context.Context, _ int64, _ billsvc.Input) (*domain.Bill, error) {
	return s.bill, s.err
}

func (s *stubBillSvc) Delete(_ context.Context, _ int64) error { return s.err }

func (s *stubBillSvc) Get(_ context.Context, _ int64) (*domain.Bill, error) {
	return s.bill, s.err
}

func (s *stubBillSvc) SetStatus(_ context.Context, _ int64, status string) error {
	s.gotStatus = status
	return s.err
}

func (s *stubBillSvc) List(_ context.Context, _ string) ([]domain.BillSummary, error) {
	return s.summaries, s.err
}

func (s *stubBillSvc) ListByCustomer(_ context.Context, _ int64) ([]domain.BillSummary, error) {
	return s.summaries, s.err
}

func testRouter(customers CustomerService, bills BillService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, nil, Deps{CustomerSvc: customers, BillSvc: bills}, time.Second)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := testRouter(&stubCustomerSvc{}, &stubBillSvc{})

	rec := doRequest(router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateCustomer(t *testing.T) {
	svc := &stubCustomerSvc{customer: &domain.Customer{ID: 1, Name: "Acme Co"}}
	router := testRouter(svc, &stubBillSvc{})

	rec := doRequest(router, http.MethodPost, "/api/v1/customers", `{"name":"Acme Co","email":"a@acme.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotInput.Name != "Acme Co" || svc.gotInput.Email != "a@acme.com" {
		t.Fatalf("service received %+v", svc.gotInput)
	}
	if !strings.Contains(rec.Body.String(), `"name":"Acme Co"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCreateCustomer_MissingName(t *testing.T) {
	router := testRouter(&stubCustomerSvc{}, &stubBillSvc{})

	rec := doRequest(router, http.MethodPost, "/api/v1/customers", `{"email":"a@acme.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	router := testRouter(&stubCustomerSvc{err: domain.ErrNotFound}, &stubBillSvc{})

	rec := doRequest(router, http.MethodGet, "/api/v1/customers/7", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetCustomer_BadID(t *testing.T) {
	router := testRouter(&stubCustomerSvc{}, &stubBillSvc{})

	rec := doRequest(router, http.MethodGet, "/api/v1/customers/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteCustomer_StillHasBills(t *testing.T) {
	svc := &stubCustomerSvc{err: domain.ErrInvalidInput}
	router := testRouter(svc, &stubBillSvc{})

	rec := doRequest(router, http.MethodDelete, "/api/v1/customers/3", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateBill(t *testing.T) {
	total, _ := decimal.NewFromString("25.00")
	tax, _ := decimal.NewFromString("2.50")
	grand, _ := decimal.NewFromString("27.50")
	svc := &stubBillSvc{bill: &domain.Bill{
		ID:          5,
		BillNumber:  "INV-202608-0001",
		CustomerID:  1,
		TotalAmount: total,
		TaxAmount:   tax,
		GrandTotal:  grand,
		Status:      domain.StatusPending,
	}}
	router := testRouter(&stubCustomerSvc{}, svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/bills",
		`{"customerId":1,"items":[{"description":"Widget","quantity":2,"unitPrice":10},{"description":"Gadget","quantity":1,"unitPrice":5}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "INV-202608-0001") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCreateBill_Conflict(t *testing.T) {
	router := testRouter(&stubCustomerSvc{}, &stubBillSvc{err: domain.ErrAlreadyExists})

	rec := doRequest(router, http.MethodPost, "/api/v1/bills", `{"customerId":1,"billNumber":"INV-202608-0001"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSetBillStatus(t *testing.T) {
	svc := &stubBillSvc{}
	router := testRouter(&stubCustomerSvc{}, svc)

	rec := doRequest(router, http.MethodPatch, "/api/v1/bills/5/status", `{"status":"PAID"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotStatus != "PAID" {
		t.Fatalf("service received status %q", svc.gotStatus)
	}

	rec = doRequest(router, http.MethodPatch, "/api/v1/bills/5/status", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing status, got %d", rec.Code)
	}
}

func TestListCustomerBills(t *testing.T) {
	svc := &stubBillSvc{summaries: []domain.BillSummary{{ID: 1, BillNumber: "INV-202608-0001", CustomerName: "Acme Co"}}}
	router := testRouter(&stubCustomerSvc{}, svc)

	rec := doRequest(router, http.MethodGet, "/api/v1/customers/1/bills", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"customerName":"Acme Co"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
