package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	ProductRepo ProductRepositoryInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		ProductRepo: NewProductRepository(db),
	}
}
