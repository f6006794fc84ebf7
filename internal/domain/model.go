package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeDelivery
}

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Description *string         `json:"description,omitempty"`
	Active      bool            `json:"active"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Employee struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderItem is one priced line of an order. Subtotal is derived, never stored on its own.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

type Order struct {
	ID           string          `json:"id"`
	Type         OrderType       `json:"order_type"`
	TableNumber  *int            `json:"table_number,omitempty"`
	CustomerName *string         `json:"customer_name,omitempty"`
	Address      *string         `json:"address,omitempty"`
	Location     *string         `json:"location,omitempty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       OrderStatus     `json:"status"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []OrderItem     `json:"items"`
}

// DisplayID is the short identifier shown on tickets and matched by search.
func DisplayID(id string) string {
	s := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}

// OrderItemView is an order line joined with its product name.
type OrderItemView struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Creator is the employee projection attached to an order view.
type Creator struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// OrderView is the read-side projection of an order with its items and creator.
type OrderView struct {
	ID           string          `json:"id"`
	DisplayID    string          `json:"display_id"`
	Type         OrderType       `json:"order_type"`
	TableNumber  *int            `json:"table_number,omitempty"`
	CustomerName *string         `json:"customer_name,omitempty"`
	Address      *string         `json:"address,omitempty"`
	Location     *string         `json:"location,omitempty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	Creator      Creator         `json:"creator"`
	Items        []OrderItemView `json:"items"`
}

type StatusLogEntry struct {
	Status    OrderStatus `json:"status"`
	ChangedBy string      `json:"changed_by"`
	ChangedAt time.Time   `json:"changed_at"`
}

type SalesReport struct {
	ReportDate   string          `json:"report_date"`
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	FilePath     string          `json:"file_path"`
	GeneratedBy  string          `json:"generated_by"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

type ProductListing struct {
	ID           string    `json:"id"`
	FilePath     string    `json:"file_path"`
	ProductCount int       `json:"product_count"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor is the authenticated employee on whose behalf an operation runs.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// SystemActor is used by the report worker for scheduled runs.
var SystemActor = Actor{ID: "report-worker", Role: RoleAdmin}
