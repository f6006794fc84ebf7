package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
)

type mockEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]domain.Employee
	creates   int
}

func newMockEmployeeRepo(es ...domain.Employee) *mockEmployeeRepo {
	m := &mockEmployeeRepo{employees: make(map[string]domain.Employee)}
	for _, e := range es {
		m.employees[e.ID] = e
	}
	return m
}

func (m *mockEmployeeRepo) List(context.Context) ([]domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Employee
	for _, e := range m.employees {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEmployeeRepo) Get(_ context.Context, id string) (domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *mockEmployeeRepo) Create(_ context.Context, e domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if _, ok := m.employees[e.ID]; ok {
		return nil
	}
	for _, other := range m.employees {
		if other.Email == e.Email {
			return domain.ErrEmailTaken
		}
	}
	m.employees[e.ID] = e
	return nil
}

func (m *mockEmployeeRepo) SetActive(_ context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	e.Active = active
	m.employees[id] = e
	return nil
}

func (m *mockEmployeeRepo) SetRole(_ context.Context, id string, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	e.Role = role
	m.employees[id] = e
	return nil
}

var (
	admin    = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	employee = domain.Actor{ID: "emp-1", Role: domain.RoleEmployee}
)

func newTestService(repo *mockEmployeeRepo) *StaffService {
	return &StaffService{
		repo: repo,
		lg:   logger.NewWithWriter("staff-test", io.Discard),
		now:  func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) },
	}
}

func TestResolveCreatesProfileOnce(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	e, err := svc.Resolve(ctx, auth.Identity{Subject: "sub-1", Email: "ana@pizza.test", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, e.Role)
	assert.True(t, e.Active)
	assert.Equal(t, "ana@pizza.test", e.Email)

	_, err = svc.Resolve(ctx, auth.Identity{Subject: "sub-1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.creates)

	stored, err := repo.Get(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, stored.Role)
}

func TestResolveFallsBackEmail(t *testing.T) {
	svc := newTestService(newMockEmployeeRepo())
	e, err := svc.Resolve(context.Background(), auth.Identity{Subject: "sub-2"})
	require.NoError(t, err)
	assert.Equal(t, "sub-2@users.local", e.Email)
}

func TestResolveRejectsTakenEmail(t *testing.T) {
	repo := newMockEmployeeRepo(domain.Employee{ID: "sub-1", Email: "ana@pizza.test", Role: domain.RoleEmployee, Active: true})
	svc := newTestService(repo)

	_, err := svc.Resolve(context.Background(), auth.Identity{Subject: "sub-9", Email: "ana@pizza.test"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	_, err = repo.Get(context.Background(), "sub-9")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestAdminOnlyOperations(t *testing.T) {
	repo := newMockEmployeeRepo(
		domain.Employee{ID: "emp-1", Role: domain.RoleEmployee, Active: true},
		domain.Employee{ID: "admin-1", Role: domain.RoleAdmin, Active: true},
	)
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.ListEmployees(ctx, employee)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.SetActive(ctx, employee, "emp-1", false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.SetRole(ctx, employee, "emp-1", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := svc.ListEmployees(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	e, err := svc.SetRole(ctx, admin, "emp-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, e.Role)

	_, err = svc.SetRole(ctx, admin, "emp-1", domain.Role("owner"))
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	e, err = svc.SetActive(ctx, admin, "emp-1", false)
	require.NoError(t, err)
	assert.False(t, e.Active)

	_, err = svc.SetActive(ctx, admin, "admin-1", false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.SetActive(ctx, admin, "ghost", true)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestGetEmployeeSelfOrAdmin(t *testing.T) {
	repo := newMockEmployeeRepo(
		domain.Employee{ID: "emp-1", Role: domain.RoleEmployee, Active: true},
		domain.Employee{ID: "emp-2", Role: domain.RoleEmployee, Active: true},
	)
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.GetEmployee(ctx, employee, "emp-1")
	assert.NoError(t, err)
	_, err = svc.GetEmployee(ctx, employee, "emp-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.GetEmployee(ctx, admin, "emp-2")
	assert.NoError(t, err)
}
