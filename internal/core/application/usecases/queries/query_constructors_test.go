package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListTasksQuery(t *testing.T) {
	q, err := queries.NewListTasksQuery("", 0)
	require.NoError(t, err)
	assert.Nil(t, q.Status())
	assert.Equal(t, 100, q.Limit())

	_, err = queries.NewListTasksQuery("lost", 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListTasksQuery("", 501)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewFindNearestCourierQuery_RejectsOutOfRange(t *testing.T) {
	_, err := queries.NewFindNearestCourierQuery(91, 0)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetWalletQuery(t *testing.T) {
	q, err := queries.NewGetWalletQuery(kernel.NewUUID(), "rider", 0)
	require.NoError(t, err)
	assert.Equal(t, "courier", string(q.OwnerKind()))
	assert.Equal(t, 20, q.History())

	_, err = queries.NewGetWalletQuery(kernel.NewUUID(), "merchant", 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUnconstructedQueriesAreRejected(t *testing.T) {
	assert.ErrorIs(t, queries.GetTaskQuery{}.Validate(), queries.ErrGetTaskQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListTasksQuery{}.Validate(), queries.ErrListTasksQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ReconcileWalletsQuery{}.Validate(), queries.ErrReconcileWalletsQueryIsNotConstructed)
}
