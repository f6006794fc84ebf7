package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	ReportRepo   ReportRepositoryInterface
	SettingsRepo SettingsRepositoryInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		ReportRepo:   NewReportRepository(db),
		SettingsRepo: NewSettingsRepository(db),
	}
}
