package domain

import "github.com/shopspring/decimal"

type CreateOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderDetails holds the order type and its type-conditional fields.
type OrderDetails struct {
	OrderType    string `json:"order_type"`
	TableNumber  string `json:"table_number,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	Address      string `json:"address,omitempty"`
	Location     string `json:"location,omitempty"`
}

type CreateOrderRequest struct {
	OrderDetails
	Items []CreateOrderItem `json:"items"`
}

type CreateOrderResponse struct {
	OrderID     string          `json:"order_id"`
	DisplayID   string          `json:"display_id"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
	Changed bool        `json:"changed"`
}

// OrderFilter narrows ListOrders. Empty or "all" fields match everything.
type OrderFilter struct {
	Status string
	Type   string
	Search string
}

type DailyStats struct {
	Date          string          `json:"date"`
	TotalOrders   int             `json:"total_orders"`
	PendingOrders int             `json:"pending_orders"`
	Revenue       decimal.Decimal `json:"revenue"`
}

type OrderDateGroup struct {
	Date   string      `json:"date"`
	Orders []OrderView `json:"orders"`
}

type ProductInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Description *string         `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	Active      *bool           `json:"active,omitempty"`
}

func (in ProductInput) Validate() error {
	if in.Name == "" || in.Price.IsNegative() || in.Quantity < 0 {
		return ErrInvalidProduct
	}
	return nil
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type SetRoleRequest struct {
	Role Role `json:"role"`
}

type AutoReportSetting struct {
	Time *string `json:"time"`
}
