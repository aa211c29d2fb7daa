package order_test

import (
	"testing"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.Confirmed,
		order.InProgress,
		order.Ready,
		order.Completed,
		order.Cancelled,
	}
}

// legalEdges is the full edge set of the production workflow.
func legalEdges() map[order.Status][]order.Status {
	return map[order.Status][]order.Status{
		order.Pending:    {order.Confirmed, order.Cancelled},
		order.Confirmed:  {order.InProgress, order.Cancelled},
		order.InProgress: {order.Ready, order.Cancelled},
		order.Ready:      {order.Completed},
	}
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses() {
		require.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", order.Pending.String())
	assert.Equal(t, "confirmed", order.Confirmed.String())
	assert.Equal(t, "in_progress", order.InProgress.String())
	assert.Equal(t, "ready", order.Ready.String())
	assert.Equal(t, "completed", order.Completed.String())
	assert.Equal(t, "cancelled", order.Cancelled.String())
	assert.Equal(t, "unknown", order.Unknown.String())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("invalid_name", func(t *testing.T) {
		_, err := order.StatusFromString("baking")
		require.Error(t, err)

		_, err = order.StatusFromString("unknown")
		require.Error(t, err)
	})
}

func TestStatus_GraphConformance(t *testing.T) {
	edges := legalEdges()

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			if from == to {
				continue // idempotent no-op is handled by the aggregate, not the graph
			}

			legal := false
			for _, target := range edges[from] {
				if target == to {
					legal = true
					break
				}
			}

			assert.Equal(t, legal, from.CanTransitionTo(to), "%s -> %s", from, to)

			// Admin holds every permission; an admin failure on a legal
			// edge or success on an illegal one is a graph defect.
			err := from.AuthorizeTransition(to, kernel.RoleAdmin)
			if legal {
				require.NoError(t, err, "%s -> %s", from, to)
			} else {
				require.Error(t, err, "%s -> %s", from, to)
				assert.ErrorIs(t, err, order.ErrInvalidTransition)
			}
		}
	}
}

func TestStatus_AuthorizeTransition_Roles(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		role    kernel.Role
		wantErr error
	}{
		{"customer_may_confirm", order.Pending, order.Confirmed, kernel.RoleCustomer, nil},
		{"customer_may_cancel_pending", order.Pending, order.Cancelled, kernel.RoleCustomer, nil},
		{"customer_may_cancel_confirmed", order.Confirmed, order.Cancelled, kernel.RoleCustomer, nil},
		{"customer_may_not_start_production", order.Confirmed, order.InProgress, kernel.RoleCustomer, order.ErrUnauthorized},
		{"customer_may_not_cancel_in_progress", order.InProgress, order.Cancelled, kernel.RoleCustomer, order.ErrUnauthorized},
		{"customer_may_not_mark_ready", order.InProgress, order.Ready, kernel.RoleCustomer, order.ErrUnauthorized},
		{"customer_may_not_complete", order.Ready, order.Completed, kernel.RoleCustomer, order.ErrUnauthorized},
		{"staff_may_start_production", order.Confirmed, order.InProgress, kernel.RoleStaff, nil},
		{"staff_may_mark_ready", order.InProgress, order.Ready, kernel.RoleStaff, nil},
		{"staff_may_complete", order.Ready, order.Completed, kernel.RoleStaff, nil},
		{"staff_may_cancel_in_progress", order.InProgress, order.Cancelled, kernel.RoleStaff, nil},
		{"nobody_cancels_ready", order.Ready, order.Cancelled, kernel.RoleAdmin, order.ErrInvalidTransition},
		{"nobody_cancels_completed", order.Completed, order.Cancelled, kernel.RoleAdmin, order.ErrInvalidTransition},
		{"completed_only_from_ready", order.InProgress, order.Completed, kernel.RoleAdmin, order.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.from.AuthorizeTransition(tt.to, tt.role)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Confirmed.IsTerminal())
	assert.False(t, order.InProgress.IsTerminal())
	assert.False(t, order.Ready.IsTerminal())
}

func TestStatus_HoldsCapacity(t *testing.T) {
	assert.False(t, order.Pending.HoldsCapacity())
	assert.True(t, order.Confirmed.HoldsCapacity())
	assert.True(t, order.InProgress.HoldsCapacity())
	assert.True(t, order.Ready.HoldsCapacity())
	assert.False(t, order.Completed.HoldsCapacity())
	assert.False(t, order.Cancelled.HoldsCapacity())
}
