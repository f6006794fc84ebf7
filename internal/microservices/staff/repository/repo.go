package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	EmployeeRepo EmployeeRepositoryInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		EmployeeRepo: NewEmployeeRepository(db),
	}
}
