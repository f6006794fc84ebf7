package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfsking/pizza-party-hq/internal/domain"
)

type OrderRepositoryInterface interface {
	// AddOrder stores the order, its items and the initial status-log row atomically.
	AddOrder(ctx context.Context, order domain.Order) error
	GetStatus(ctx context.Context, id string) (domain.OrderStatus, error)
	// UpdateStatus moves id from -> to only if the stored status is still from.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, changedBy string) error
}

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

func (or *OrderRepository) AddOrder(ctx context.Context, order domain.Order) (err error) {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// 1. Insert order
	_, err = tx.Exec(ctx, `
		INSERT INTO orders
		    (id, order_type, table_number, customer_name, address, location, total_amount, status, created_by, created_at, updated_at)
		VALUES
		    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`,
		order.ID,
		string(order.Type),
		order.TableNumber,
		order.CustomerName,
		order.Address,
		order.Location,
		order.TotalAmount.String(),
		string(order.Status),
		order.CreatedBy,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	// 2. Insert order items
	batch := &pgx.Batch{}
	for i, item := range order.Items {
		batch.Queue(`
			INSERT INTO order_items (id, order_id, product_id, line_no, quantity, unit_price, subtotal, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.NewString(), order.ID, item.ProductID, i, item.Quantity, item.UnitPrice.String(), item.Subtotal().String(), order.CreatedAt)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}

	// 3. Insert into order_status_log
	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4)
	`, order.ID, string(order.Status), order.CreatedBy, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order status log: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (or *OrderRepository) GetStatus(ctx context.Context, id string) (domain.OrderStatus, error) {
	var s string
	err := or.db.QueryRow(ctx, `SELECT status FROM orders WHERE id::text = $1`, id).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrOrderNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get order status: %w", err)
	}
	return domain.ParseStatus(s)
}

func (or *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, changedBy string) (err error) {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE orders SET status = $3, updated_at = now()
		WHERE id::text = $1 AND status = $2
	`, id, string(from), string(to))
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = domain.ErrStatusConflict
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1::uuid, $2, $3, now())
	`, id, string(to), changedBy)
	if err != nil {
		return fmt.Errorf("failed to insert order status log: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
