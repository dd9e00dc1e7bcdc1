package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat tax applied to every bill.
var TaxRate = decimal.NewFromFloat(0.10)

// BillStatus tracks the payment state of a bill.
type BillStatus string

const (
	StatusPending BillStatus = "PENDING"
	StatusPaid    BillStatus = "PAID"
	StatusOverdue BillStatus = "OVERDUE"
)

// Valid reports whether s is one of the known statuses.
func (s BillStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// BillItem is a single line on a bill. Items have no lifecycle of their own:
// they are written and deleted together with their owning bill.
type BillItem struct {
	ID          int64           `json:"id"`
	BillID      int64           `json:"billId"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// Bill is an invoice header plus its ordered line items. The three amount
// fields are always derived from Items; callers never set them directly.
type Bill struct {
	ID          int64           `json:"id"`
	BillNumber  string          `json:"billNumber"`
	CustomerID  int64           `json:"customerId"`
	BillDate    time.Time       `json:"billDate"`
	DueDate     time.Time       `json:"dueDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	Status      BillStatus      `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Items       []BillItem      `json:"items"`
}

// BillSummary is one row of a bill listing joined to its customer, shaped for
// tabular display.
type BillSummary struct {
	ID           int64           `json:"id"`
	BillNumber   string          `json:"billNumber"`
	CustomerID   int64           `json:"customerId"`
	CustomerName string          `json:"customerName"`
	BillDate     time.Time       `json:"billDate"`
	DueDate      time.Time       `json:"dueDate"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	Status       BillStatus      `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// AddItem appends a line with amount = quantity x unitPrice and recomputes the
// bill totals.
func (b *Bill) AddItem(description string, quantity, unitPrice decimal.Decimal) BillItem {
	item := BillItem{
		BillID:      b.ID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice).Round(2),
	}
	b.Items = append(b.Items, item)
	b.RecalculateTotals()
	return item
}

// RemoveItem drops the line at index and recomputes totals. It reports whether
// anything was removed.
func (b *Bill) RemoveItem(index int) bool {
	if index < 0 || index >= len(b.Items) {
		return false
	}
	b.Items = append(b.Items[:index], b.Items[index+1:]...)
	b.RecalculateTotals()
	return true
}

// RecalculateTotals rederives TotalAmount, TaxAmount and GrandTotal from Items.
func (b *Bill) RecalculateTotals() {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.Amount)
	}
	b.TotalAmount = total
	b.TaxAmount = total.Mul(TaxRate).Round(2)
	b.GrandTotal = b.TotalAmount.Add(b.TaxAmount)
}
