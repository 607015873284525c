// internal/domain/order/entity.go
package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Area    string `json:"area"`
	Address string `json:"address"`
}

type Line struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	Image     string  `json:"image,omitempty"`
}

// Total is price x qty computed without float drift.
func (l Line) Total() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Qty)))
}

type Totals struct {
	SubTotal   float64 `json:"subTotal"`
	Shipping   float64 `json:"shipping"`
	GrandTotal float64 `json:"grandTotal"`
}

type Order struct {
	ID        string    `json:"id"`
	Customer  Customer  `json:"customer"`
	Lines     []Line    `json:"lines"`
	Totals    Totals    `json:"totals"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ItemCount is the number of units across all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Qty
	}
	return n
}

// Matches is the client-side search over order id and customer name.
func Matches(o Order, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.ID), q) ||
		strings.Contains(strings.ToLower(o.Customer.Name), q)
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}
