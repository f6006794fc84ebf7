package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/staff/repository"
)

type StaffServiceInterface interface {
	ListEmployees(ctx context.Context, actor domain.Actor) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, actor domain.Actor, id string) (domain.Employee, error)
	SetActive(ctx context.Context, actor domain.Actor, id string, active bool) (domain.Employee, error)
	SetRole(ctx context.Context, actor domain.Actor, id string, role domain.Role) (domain.Employee, error)
	Resolve(ctx context.Context, id auth.Identity) (domain.Employee, error)
}

type StaffService struct {
	repo repository.EmployeeRepositoryInterface
	lg   *logger.Logger
	now  func() time.Time
}

func NewStaffService(repo repository.EmployeeRepositoryInterface, lg *logger.Logger) StaffServiceInterface {
	return &StaffService{repo: repo, lg: lg, now: time.Now}
}

func (s *StaffService) ListEmployees(ctx context.Context, actor domain.Actor) ([]domain.Employee, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

// GetEmployee lets admins read any profile and employees read their own.
func (s *StaffService) GetEmployee(ctx context.Context, actor domain.Actor, id string) (domain.Employee, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return domain.Employee{}, domain.ErrForbidden
	}
	return s.repo.Get(ctx, id)
}

func (s *StaffService) SetActive(ctx context.Context, actor domain.Actor, id string, active bool) (domain.Employee, error) {
	if !actor.IsAdmin() {
		return domain.Employee{}, domain.ErrForbidden
	}
	if actor.ID == id && !active {
		return domain.Employee{}, fmt.Errorf("%w: cannot deactivate yourself", domain.ErrForbidden)
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return domain.Employee{}, err
	}
	s.lg.InfoCtx(ctx, "employee_active_changed", map[string]any{"employee_id": id, "active": active, "by": actor.ID})
	return s.repo.Get(ctx, id)
}

func (s *StaffService) SetRole(ctx context.Context, actor domain.Actor, id string, role domain.Role) (domain.Employee, error) {
	if !actor.IsAdmin() {
		return domain.Employee{}, domain.ErrForbidden
	}
	if !role.Valid() {
		return domain.Employee{}, domain.ErrInvalidRole
	}
	if err := s.repo.SetRole(ctx, id, role); err != nil {
		return domain.Employee{}, err
	}
	s.lg.InfoCtx(ctx, "employee_role_changed", map[string]any{"employee_id": id, "role": role, "by": actor.ID})
	return s.repo.Get(ctx, id)
}

// Resolve returns the profile for an authenticated identity and creates it on first login.
func (s *StaffService) Resolve(ctx context.Context, id auth.Identity) (domain.Employee, error) {
	e, err := s.repo.Get(ctx, id.Subject)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return domain.Employee{}, err
	}

	e = domain.Employee{
		ID:        id.Subject,
		FullName:  id.Name,
		Email:     id.Email,
		Role:      id.Role,
		Active:    true,
		CreatedAt: s.now().UTC(),
	}
	if e.Email == "" {
		e.Email = id.Subject + "@users.local"
	}
	if !e.Role.Valid() {
		e.Role = domain.RoleEmployee
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return domain.Employee{}, fmt.Errorf("create profile: %w", err)
	}
	s.lg.InfoCtx(ctx, "profile_created", map[string]any{"employee_id": e.ID, "role": e.Role})
	// a concurrent first login may have won the insert
	return s.repo.Get(ctx, id.Subject)
}
