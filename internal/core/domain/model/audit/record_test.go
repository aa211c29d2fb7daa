package audit_test

import (
	"testing"
	"time"

	"bakeshop/internal/core/domain/model/audit"
	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Run("valid_record", func(t *testing.T) {
		orderID := kernel.NewUUID()
		actorID := kernel.NewUUID()
		at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

		rec, err := audit.NewRecord(orderID, order.Pending, order.Confirmed,
			kernel.RoleCustomer, &actorID, "prepaid online", at)
		require.NoError(t, err)
		require.NoError(t, rec.Validate())

		assert.True(t, rec.OrderID().IsEqual(orderID))
		assert.Equal(t, order.Pending, rec.Previous())
		assert.Equal(t, order.Confirmed, rec.New())
		assert.Equal(t, kernel.RoleCustomer, rec.ActorRole())
		require.NotNil(t, rec.ActorID())
		assert.True(t, rec.ActorID().IsEqual(actorID))
		assert.Equal(t, "prepaid online", rec.Reason())
		assert.Equal(t, at, rec.OccurredAt())
	})

	t.Run("actor_and_reason_are_optional", func(t *testing.T) {
		rec, err := audit.NewRecord(kernel.NewUUID(), order.Confirmed, order.InProgress,
			kernel.RoleStaff, nil, "", time.Now())
		require.NoError(t, err)
		assert.Nil(t, rec.ActorID())
		assert.Empty(t, rec.Reason())
	})

	t.Run("invalid_order_id", func(t *testing.T) {
		_, err := audit.NewRecord(kernel.UUID{}, order.Pending, order.Confirmed,
			kernel.RoleStaff, nil, "", time.Now())
		require.Error(t, err)
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		_, err := audit.NewRecord(kernel.NewUUID(), order.Unknown, order.Confirmed,
			kernel.RoleStaff, nil, "", time.Now())
		require.Error(t, err)

		_, err = audit.NewRecord(kernel.NewUUID(), order.Pending, order.Unknown,
			kernel.RoleStaff, nil, "", time.Now())
		require.Error(t, err)
	})

	t.Run("invalid_actor_role", func(t *testing.T) {
		_, err := audit.NewRecord(kernel.NewUUID(), order.Pending, order.Confirmed,
			kernel.Role("bot"), nil, "", time.Now())
		require.Error(t, err)
	})

	t.Run("invalid_actor_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := audit.NewRecord(kernel.NewUUID(), order.Pending, order.Confirmed,
			kernel.RoleStaff, &zero, "", time.Now())
		require.Error(t, err)
	})
}

func TestRecord_Validate(t *testing.T) {
	var notConstructed audit.Record
	err := notConstructed.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, audit.ErrRecordIsNotConstructed)

	var nilRecord *audit.Record
	require.Error(t, nilRecord.Validate())
}
