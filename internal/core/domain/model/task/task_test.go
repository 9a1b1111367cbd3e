package task_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func newPlace(t *testing.T, address string, lat, lng float64) kernel.Place {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	place, err := kernel.NewPlace(address, point)
	require.NoError(t, err)
	return place
}

func newTask(t *testing.T, chargeable bool) *task.Task {
	t.Helper()
	customer, err := task.NewCustomerCreator(kernel.NewUUID())
	require.NoError(t, err)
	tk, err := task.NewTask(kernel.NewUUID(),
		newPlace(t, "Chorsu bazaar", 41.326, 69.228),
		newPlace(t, "Yunusabad 4", 41.366, 69.287),
		customer, chargeable, 10000, now)
	require.NoError(t, err)
	return tk
}

func TestNewTask(t *testing.T) {
	t.Run("chargeable task starts pending and unpaid", func(t *testing.T) {
		tk := newTask(t, true)

		require.NoError(t, tk.Validate())
		assert.Equal(t, task.Pending, tk.Status())
		assert.Equal(t, task.Unpaid, tk.PaymentStatus())
		assert.True(t, tk.IsChargeable())
		assert.Equal(t, int64(10000), tk.Price())
		assert.Nil(t, tk.CourierID())
	})

	t.Run("free task has payment waived", func(t *testing.T) {
		tk := newTask(t, false)
		assert.Equal(t, task.Waived, tk.PaymentStatus())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tk, err := task.NewTask(kernel.UUID{}, kernel.Place{}, kernel.Place{},
			task.Creator{Kind: task.CreatedByCustomer}, true, -1, now)

		require.Error(t, err)
		assert.Nil(t, tk)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "place must be created")
		assert.Contains(t, err.Error(), "customer_id")
		assert.Contains(t, err.Error(), "price")
	})
}

func TestTask_Assign(t *testing.T) {
	courierA := kernel.NewUUID()
	courierB := kernel.NewUUID()

	t.Run("assigns pending task", func(t *testing.T) {
		tk := newTask(t, true)

		changed, err := tk.Assign(courierA, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, task.Assigned, tk.Status())
		assert.True(t, tk.IsAssignedTo(courierA))
	})

	t.Run("same courier is idempotent", func(t *testing.T) {
		tk := newTask(t, true)
		_, _ = tk.Assign(courierA, now)

		changed, err := tk.Assign(courierA, now.Add(time.Minute))

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, now, tk.UpdatedAt())
	})

	t.Run("different courier conflicts", func(t *testing.T) {
		tk := newTask(t, true)
		_, _ = tk.Assign(courierA, now)

		_, err := tk.Assign(courierB, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		require.ErrorIs(t, err, task.ErrAssignedToAnotherCourier)
		assert.True(t, tk.IsAssignedTo(courierA))
	})

	t.Run("cancelled task cannot be assigned", func(t *testing.T) {
		tk := newTask(t, true)
		require.NoError(t, tk.Advance(task.Cancelled, now))

		_, err := tk.Assign(courierA, now)

		require.ErrorIs(t, err, task.ErrIllegalTransition)
	})
}

func TestTask_Accept(t *testing.T) {
	courierA := kernel.NewUUID()

	t.Run("assigned courier accepts", func(t *testing.T) {
		tk := newTask(t, true)
		_, _ = tk.Assign(courierA, now)

		require.NoError(t, tk.Accept(courierA, now))
		assert.Equal(t, task.Accepted, tk.Status())
	})

	t.Run("other courier is forbidden", func(t *testing.T) {
		tk := newTask(t, true)
		_, _ = tk.Assign(courierA, now)

		err := tk.Accept(kernel.NewUUID(), now)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, task.Assigned, tk.Status())
	})

	t.Run("second accept reports already accepted", func(t *testing.T) {
		tk := newTask(t, true)
		_, _ = tk.Assign(courierA, now)
		require.NoError(t, tk.Accept(courierA, now))

		err := tk.Accept(courierA, now)

		require.ErrorIs(t, err, task.ErrAlreadyAccepted)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("pending task cannot be accepted", func(t *testing.T) {
		tk := newTask(t, true)

		require.ErrorIs(t, tk.Accept(courierA, now), task.ErrIllegalTransition)
	})
}

func TestTask_Advance(t *testing.T) {
	courierA := kernel.NewUUID()

	t.Run("full happy path", func(t *testing.T) {
		tk := newTask(t, false)
		_, _ = tk.Assign(courierA, now)
		require.NoError(t, tk.Accept(courierA, now))
		require.NoError(t, tk.Advance(task.PickedUp, now))
		require.NoError(t, tk.Advance(task.Delivered, now))

		assert.Equal(t, task.Delivered, tk.Status())
	})

	t.Run("terminal states are final", func(t *testing.T) {
		tk := newTask(t, false)
		require.NoError(t, tk.Advance(task.Cancelled, now))

		require.ErrorIs(t, tk.Advance(task.PickedUp, now), task.ErrIllegalTransition)
		require.ErrorIs(t, tk.Advance(task.Cancelled, now), task.ErrIllegalTransition)
	})

	t.Run("picked up cannot be cancelled", func(t *testing.T) {
		tk := newTask(t, false)
		_, _ = tk.Assign(courierA, now)
		require.NoError(t, tk.Accept(courierA, now))
		require.NoError(t, tk.Advance(task.PickedUp, now))

		require.ErrorIs(t, tk.Advance(task.Cancelled, now), task.ErrIllegalTransition)
	})

	t.Run("assigned and accepted are not reachable through Advance", func(t *testing.T) {
		tk := newTask(t, false)

		require.ErrorIs(t, tk.Advance(task.Assigned, now), task.ErrIllegalTransition)
		require.ErrorIs(t, tk.Advance(task.Accepted, now), task.ErrIllegalTransition)
	})

	t.Run("unknown status is invalid input", func(t *testing.T) {
		tk := newTask(t, false)

		require.ErrorIs(t, tk.Advance(task.Status("lost"), now), errs.ErrValueIsInvalid)
	})
}

func TestRestoreTask_CourierInvariant(t *testing.T) {
	customer, _ := task.NewCustomerCreator(kernel.NewUUID())
	pickup := newPlace(t, "A", 1, 1)
	dropoff := newPlace(t, "B", 2, 2)

	_, err := task.RestoreTask(kernel.NewUUID(), pickup, dropoff, customer, nil,
		task.Accepted, true, 10000, task.Unpaid, now, now)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to task.Status
		legal    bool
	}{
		{task.Pending, task.Assigned, true},
		{task.Pending, task.Cancelled, true},
		{task.Pending, task.Accepted, false},
		{task.Assigned, task.Accepted, true},
		{task.Assigned, task.Cancelled, true},
		{task.Assigned, task.PickedUp, false},
		{task.Accepted, task.PickedUp, true},
		{task.Accepted, task.Cancelled, true},
		{task.PickedUp, task.Delivered, true},
		{task.PickedUp, task.Cancelled, false},
		{task.Delivered, task.Cancelled, false},
		{task.Cancelled, task.Pending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.legal, tt.from.CanTransitionTo(tt.to))
		})
	}
}
