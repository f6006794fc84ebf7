package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfsking/pizza-party-hq/internal/domain"
)

type TrackerRepoInterface interface {
	// ListOrders filters by exact status and type; empty values match everything.
	ListOrders(ctx context.Context, status, orderType string) ([]domain.OrderView, error)
	// OrdersBetween returns orders with start <= created_at < end.
	OrdersBetween(ctx context.Context, start, end time.Time) ([]domain.OrderView, error)
	GetOrder(ctx context.Context, id string) (domain.OrderView, error)
	GetOrderTimeline(ctx context.Context, id string, limit, offset int) ([]domain.StatusLogEntry, error)
}

type TrackerRepo struct {
	db *pgxpool.Pool
}

func NewTrackerRepo(db *pgxpool.Pool) *TrackerRepo { return &TrackerRepo{db: db} }

const orderSelect = `
SELECT o.id::text, o.order_type, o.table_number, o.customer_name, o.address, o.location,
       o.total_amount, o.status, o.created_at,
       p.id, p.full_name, p.email
FROM orders o
JOIN profiles p ON p.id = o.created_by
`

func (r *TrackerRepo) ListOrders(ctx context.Context, status, orderType string) ([]domain.OrderView, error) {
	return r.queryOrders(ctx, orderSelect+`
WHERE ($1 = '' OR o.status = $1) AND ($2 = '' OR o.order_type = $2)
ORDER BY o.created_at DESC
`, status, orderType)
}

func (r *TrackerRepo) OrdersBetween(ctx context.Context, start, end time.Time) ([]domain.OrderView, error) {
	return r.queryOrders(ctx, orderSelect+`
WHERE o.created_at >= $1 AND o.created_at < $2
ORDER BY o.created_at DESC
`, start, end)
}

func (r *TrackerRepo) GetOrder(ctx context.Context, id string) (domain.OrderView, error) {
	orders, err := r.queryOrders(ctx, orderSelect+`WHERE o.id::text = $1`, id)
	if err != nil {
		return domain.OrderView{}, err
	}
	if len(orders) == 0 {
		return domain.OrderView{}, domain.ErrOrderNotFound
	}
	return orders[0], nil
}

func (r *TrackerRepo) GetOrderTimeline(ctx context.Context, id string, limit, offset int) ([]domain.StatusLogEntry, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id::text = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check order %s: %w", id, err)
	}
	if !exists {
		return nil, domain.ErrOrderNotFound
	}

	rows, err := r.db.Query(ctx, `
SELECT status, changed_by, changed_at
FROM order_status_log WHERE order_id::text = $1
ORDER BY changed_at ASC, id ASC
LIMIT $2 OFFSET $3
`, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	defer rows.Close()

	out := []domain.StatusLogEntry{}
	for rows.Next() {
		var e domain.StatusLogEntry
		var status string
		if err := rows.Scan(&status, &e.ChangedBy, &e.ChangedAt); err != nil {
			return nil, err
		}
		e.Status = domain.OrderStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

// queryOrders loads orders and then their items in one extra round trip.
func (r *TrackerRepo) queryOrders(ctx context.Context, query string, args ...any) ([]domain.OrderView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var (
		out []domain.OrderView
		ids []string
		idx = make(map[string]int)
	)
	for rows.Next() {
		var v domain.OrderView
		var typ, status string
		if err := rows.Scan(
			&v.ID, &typ, &v.TableNumber, &v.CustomerName, &v.Address, &v.Location,
			&v.TotalAmount, &status, &v.CreatedAt,
			&v.Creator.ID, &v.Creator.FullName, &v.Creator.Email,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		v.Type = domain.OrderType(typ)
		v.Status = domain.OrderStatus(status)
		v.DisplayID = domain.DisplayID(v.ID)
		v.Items = []domain.OrderItemView{}
		idx[v.ID] = len(out)
		ids = append(ids, v.ID)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.db.Query(ctx, `
SELECT oi.id::text, oi.order_id::text, oi.product_id::text, pr.name, oi.quantity, oi.unit_price, oi.subtotal
FROM order_items oi
JOIN products pr ON pr.id = oi.product_id
WHERE oi.order_id::text = ANY($1)
ORDER BY oi.order_id, oi.line_no
`, ids)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer items.Close()

	for items.Next() {
		var it domain.OrderItemView
		var orderID string
		if err := items.Scan(&it.ID, &orderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		i, ok := idx[orderID]
		if !ok {
			return nil, errors.New("order item references an order outside the result set")
		}
		out[i].Items = append(out[i].Items, it)
	}
	return out, items.Err()
}
