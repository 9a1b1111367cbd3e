package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/domain/model/wallet"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func newPlace(t *testing.T, address string, lat, lng float64) kernel.Place {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	place, err := kernel.NewPlace(address, point)
	require.NoError(t, err)
	return place
}

func newCourier(t *testing.T) *courier.Courier {
	t.Helper()
	phone, err := kernel.NewPhone("+998901234567")
	require.NoError(t, err)
	c, err := courier.NewCourier(kernel.NewUUID(), phone, "Bekzod", fixedNow)
	require.NoError(t, err)
	return c
}

// restoreTask builds a customer task in the given state.
func restoreTask(t *testing.T, status task.Status, courierID *kernel.UUID, chargeable bool) *task.Task {
	t.Helper()
	creator, err := task.NewCustomerCreator(kernel.NewUUID())
	require.NoError(t, err)

	payment := task.Waived
	if chargeable {
		payment = task.Unpaid
	}

	tk, err := task.RestoreTask(
		kernel.NewUUID(),
		newPlace(t, "Chorsu bazaar", 41.326, 69.228),
		newPlace(t, "Yunusabad 4", 41.366, 69.287),
		creator,
		courierID,
		status,
		chargeable,
		10000,
		payment,
		fixedNow,
		fixedNow,
	)
	require.NoError(t, err)
	return tk
}

func newWallet(t *testing.T, ownerID kernel.UUID, kind wallet.OwnerKind, balance int64) *wallet.Wallet {
	t.Helper()
	w, err := wallet.RestoreWallet(kernel.NewUUID(), ownerID, kind, balance, fixedNow)
	require.NoError(t, err)
	return w
}
