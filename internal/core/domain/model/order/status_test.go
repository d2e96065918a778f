package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTo(t *testing.T) {
	allowed := []struct {
		from order.Status
		to   order.Status
	}{
		{order.Created, order.Assigned},
		{order.Assigned, order.PickedUp},
		{order.PickedUp, order.Delivering},
		{order.Delivering, order.Delivered},
		{order.Delivered, order.Paid},
		{order.Delivered, order.Completed},
		{order.Paid, order.Completed},
		{order.Created, order.Cancelled},
		{order.Assigned, order.Cancelled},
		{order.PickedUp, order.Cancelled},
		{order.Delivering, order.Cancelled},
		{order.Delivered, order.Cancelled},
		{order.Paid, order.Cancelled},
	}

	for _, tt := range allowed {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			got, err := tt.from.TransitionTo(tt.to)

			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestStatus_TransitionTo_RefusesNonAdjacent(t *testing.T) {
	statuses := []order.Status{
		order.Created, order.Assigned, order.PickedUp, order.Delivering,
		order.Delivered, order.Paid, order.Completed, order.Cancelled,
	}

	isAllowed := func(from, to order.Status) bool {
		return from.CanTransitionTo(to)
	}

	// Every pair not in the adjacency table must be refused.
	for _, from := range statuses {
		for _, to := range statuses {
			if isAllowed(from, to) {
				continue
			}
			t.Run(from.String()+"_to_"+to.String()+"_refused", func(t *testing.T) {
				_, err := from.TransitionTo(to)
				require.Error(t, err)
			})
		}
	}
}

func TestStatus_TransitionTo_DirectShortcutsRefused(t *testing.T) {
	// A created order cannot jump straight to Delivered; it must pass
	// through the intermediate states.
	_, err := order.Created.TransitionTo(order.Delivered)
	require.Error(t, err)

	_, err = order.Assigned.TransitionTo(order.Delivered)
	require.Error(t, err)
}

func TestStatus_TerminalStates(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, s := range []order.Status{
		order.Created, order.Assigned, order.PickedUp,
		order.Delivering, order.Delivered, order.Paid,
	} {
		assert.False(t, s.IsTerminal(), s.String())
	}

	// Nothing leaves a terminal state, not even Cancelled.
	_, err := order.Completed.TransitionTo(order.Cancelled)
	require.Error(t, err)
	_, err = order.Cancelled.TransitionTo(order.Created)
	require.Error(t, err)
}

func TestStatus_IsActiveDelivery(t *testing.T) {
	active := []order.Status{order.Assigned, order.PickedUp, order.Delivering, order.Delivered}
	for _, s := range active {
		assert.True(t, s.IsActiveDelivery(), s.String())
	}

	inactive := []order.Status{order.Created, order.Paid, order.Completed, order.Cancelled}
	for _, s := range inactive {
		assert.False(t, s.IsActiveDelivery(), s.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := order.StatusFromString("Delivering")
		require.NoError(t, err)
		assert.Equal(t, order.Delivering, s)
	})

	t.Run("unknown_name", func(t *testing.T) {
		_, err := order.StatusFromString("Teleported")
		require.Error(t, err)
	})

	t.Run("unknown_is_not_parseable", func(t *testing.T) {
		_, err := order.StatusFromString("Unknown")
		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Created.Validate())
	require.NoError(t, order.Cancelled.Validate())
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "PickedUp", order.PickedUp.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}
