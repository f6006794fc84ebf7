package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfsking/pizza-party-hq/internal/domain"
)

type EmployeeRepositoryInterface interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id string) (domain.Employee, error)
	// Create inserts e unless a profile with the same id exists.
	Create(ctx context.Context, e domain.Employee) error
	SetActive(ctx context.Context, id string, active bool) error
	SetRole(ctx context.Context, id string, role domain.Role) error
}

type EmployeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) EmployeeRepositoryInterface {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id::text, full_name, email, role, active, created_at`

func scanEmployee(row pgx.Row) (domain.Employee, error) {
	var e domain.Employee
	var role string
	if err := row.Scan(&e.ID, &e.FullName, &e.Email, &role, &e.Active, &e.CreatedAt); err != nil {
		return domain.Employee{}, err
	}
	e.Role = domain.Role(role)
	return e, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT `+employeeColumns+` FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EmployeeRepository) Get(ctx context.Context, id string) (domain.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM profiles WHERE id::text = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return domain.Employee{}, fmt.Errorf("get profile %s: %w", id, err)
	}
	return e, nil
}

const uniqueViolation = "23505"

// Create inserts a profile. An existing id is left untouched; an e-mail owned
// by another profile fails with ErrEmailTaken.
func (r *EmployeeRepository) Create(ctx context.Context, e domain.Employee) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (id, full_name, email, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, e.ID, e.FullName, e.Email, string(e.Role), e.Active, e.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET active = $2 WHERE id::text = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set profile %s active: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET role = $2 WHERE id::text = $1`, id, string(role))
	if err != nil {
		return fmt.Errorf("set profile %s role: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
