package service

import (
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/repository"
)

type Service struct {
	ReportService *ReportService
}

func New(db *repository.Repository, d Deps, lg *logger.Logger) *Service {
	return &Service{
		ReportService: NewReportService(db, d, lg),
	}
}
