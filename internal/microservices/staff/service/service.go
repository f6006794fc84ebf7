package service

import (
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/staff/repository"
)

type Service struct {
	StaffService StaffServiceInterface
}

func New(repo *repository.Repository, lg *logger.Logger) *Service {
	return &Service{
		StaffService: NewStaffService(repo.EmployeeRepo, lg),
	}
}
