package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfsking/pizza-party-hq/internal/domain"
)

type ReportRepositoryInterface interface {
	// UpsertSalesReport replaces the record for the same report date.
	UpsertSalesReport(ctx context.Context, r domain.SalesReport) error
	ListSalesReports(ctx context.Context) ([]domain.SalesReport, error)
	GetSalesReport(ctx context.Context, date string) (domain.SalesReport, error)

	CreateListing(ctx context.Context, l domain.ProductListing) error
	ListListings(ctx context.Context) ([]domain.ProductListing, error)
	GetListing(ctx context.Context, id string) (domain.ProductListing, error)
	DeleteListing(ctx context.Context, id string) error
}

type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) UpsertSalesReport(ctx context.Context, rep domain.SalesReport) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sales_reports (report_date, total_orders, total_revenue, file_path, generated_by, generated_at)
		VALUES ($1::date, $2, $3, $4, $5, $6)
		ON CONFLICT (report_date) DO UPDATE SET
			total_orders  = EXCLUDED.total_orders,
			total_revenue = EXCLUDED.total_revenue,
			file_path     = EXCLUDED.file_path,
			generated_by  = EXCLUDED.generated_by,
			generated_at  = EXCLUDED.generated_at
	`, rep.ReportDate, rep.TotalOrders, rep.TotalRevenue.String(), rep.FilePath, rep.GeneratedBy, rep.GeneratedAt)
	if err != nil {
		return fmt.Errorf("upsert sales report %s: %w", rep.ReportDate, err)
	}
	return nil
}

const salesColumns = `to_char(report_date, 'YYYY-MM-DD'), total_orders, total_revenue, file_path, generated_by, generated_at`

func scanSales(row pgx.Row) (domain.SalesReport, error) {
	var s domain.SalesReport
	err := row.Scan(&s.ReportDate, &s.TotalOrders, &s.TotalRevenue, &s.FilePath, &s.GeneratedBy, &s.GeneratedAt)
	return s, err
}

func (r *ReportRepository) ListSalesReports(ctx context.Context) ([]domain.SalesReport, error) {
	rows, err := r.db.Query(ctx, `SELECT `+salesColumns+` FROM sales_reports ORDER BY report_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sales reports: %w", err)
	}
	defer rows.Close()

	out := []domain.SalesReport{}
	for rows.Next() {
		s, err := scanSales(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales report: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ReportRepository) GetSalesReport(ctx context.Context, date string) (domain.SalesReport, error) {
	s, err := scanSales(r.db.QueryRow(ctx, `SELECT `+salesColumns+` FROM sales_reports WHERE report_date = $1::date`, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SalesReport{}, domain.ErrReportNotFound
	}
	if err != nil {
		return domain.SalesReport{}, fmt.Errorf("get sales report %s: %w", date, err)
	}
	return s, nil
}

func (r *ReportRepository) CreateListing(ctx context.Context, l domain.ProductListing) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO product_listings (id, file_path, product_count, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, l.ID, l.FilePath, l.ProductCount, l.CreatedBy, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product listing: %w", err)
	}
	return nil
}

const listingColumns = `id::text, file_path, product_count, created_by, created_at`

func scanListing(row pgx.Row) (domain.ProductListing, error) {
	var l domain.ProductListing
	err := row.Scan(&l.ID, &l.FilePath, &l.ProductCount, &l.CreatedBy, &l.CreatedAt)
	return l, err
}

func (r *ReportRepository) ListListings(ctx context.Context) ([]domain.ProductListing, error) {
	rows, err := r.db.Query(ctx, `SELECT `+listingColumns+` FROM product_listings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query product listings: %w", err)
	}
	defer rows.Close()

	out := []domain.ProductListing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ReportRepository) GetListing(ctx context.Context, id string) (domain.ProductListing, error) {
	l, err := scanListing(r.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM product_listings WHERE id::text = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ProductListing{}, domain.ErrReportNotFound
	}
	if err != nil {
		return domain.ProductListing{}, fmt.Errorf("get product listing %s: %w", id, err)
	}
	return l, nil
}

func (r *ReportRepository) DeleteListing(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_listings WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product listing %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}
