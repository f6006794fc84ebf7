package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfsking/pizza-party-hq/internal/domain"
)

func seededService(t *testing.T, status domain.OrderStatus) (*OrderService, *mockOrderRepo) {
	t.Helper()
	repo := newMockOrderRepo()
	repo.orders["o1"] = domain.Order{ID: "o1", Status: status}
	return newTestService(repo, nil), repo
}

func TestAdvanceWalksTheLifecycle(t *testing.T) {
	svc, repo := seededService(t, domain.StatusPending)
	ctx := context.Background()

	resp, err := svc.Advance(ctx, cashier, "o1")
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, domain.StatusInProgress, resp.Status)

	resp, err = svc.Advance(ctx, cashier, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Status)

	resp, err = svc.Advance(ctx, cashier, "o1")
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, domain.StatusCompleted, resp.Status)

	assert.Equal(t, 2, repo.updates)
	require.Len(t, repo.log, 2)
	assert.Equal(t, cashier.ID, repo.log[1].ChangedBy)
}

func TestUpdateStatusOnlyToNext(t *testing.T) {
	svc, repo := seededService(t, domain.StatusPending)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, cashier, "o1", "completed")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = svc.UpdateStatus(ctx, cashier, "o1", "pending")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = svc.UpdateStatus(ctx, cashier, "o1", "baked")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Zero(t, repo.updates)

	resp, err := svc.UpdateStatus(ctx, cashier, "o1", "in_progress")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, resp.Status)
}

func TestUpdateStatusFromTerminalIsNoop(t *testing.T) {
	for _, st := range []domain.OrderStatus{domain.StatusCompleted, domain.StatusCancelled} {
		svc, repo := seededService(t, st)
		for _, target := range []string{"pending", "in_progress", "completed", "cancelled"} {
			resp, err := svc.UpdateStatus(context.Background(), cashier, "o1", target)
			require.NoError(t, err)
			assert.False(t, resp.Changed)
			assert.Equal(t, st, resp.Status)
		}
		assert.Zero(t, repo.updates)
	}
}

func TestStatusOfMissingOrder(t *testing.T) {
	svc, _ := seededService(t, domain.StatusPending)
	_, err := svc.Advance(context.Background(), cashier, "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateStatusFromTerminalIgnoresUnknownTarget(t *testing.T) {
	svc, repo := seededService(t, domain.StatusCompleted)

	resp, err := svc.UpdateStatus(context.Background(), cashier, "o1", "bogus")
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, domain.StatusCompleted, resp.Status)
	assert.Zero(t, repo.updates)
}
