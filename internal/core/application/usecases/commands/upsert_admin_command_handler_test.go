package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpsertAdminCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	repo := new(MockAdminRepository)
	hasher := new(MockPasswordHasher)
	uow := new(MockUoW)
	factory := new(MockAdminUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("AdminRepository").Return(repo)
	hasher.On("Hash", "correct-horse").Return("$2a$digest", nil)

	var saved *admin.Admin
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		repo.On("Upsert", ctx, mock.AnythingOfType("*admin.Admin")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*admin.Admin) }).
			Return(nil),
		uow.On("Commit", ctx).Return(nil),
	)
	uow.On("Rollback", ctx).Return(nil)

	cmd, err := commands.NewUpsertAdminCommand(" Ops@Example.com ", " Ops ", "correct-horse")
	require.NoError(t, err)

	err = commands.NewUpsertAdminCommandHandler(factory, hasher).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "ops@example.com", saved.Email)
	assert.Equal(t, "Ops", saved.Name)
	assert.Equal(t, "$2a$digest", saved.PasswordHash)
	uow.AssertExpectations(t)
}

func TestNewUpsertAdminCommand_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"short password", "ops@example.com", "short", errs.ErrValueIsOutOfRange},
		{"bad email", "not-an-email", "long-enough", errs.ErrValueIsInvalid},
		{"missing email", "", "long-enough", errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewUpsertAdminCommand(tt.email, "", tt.password)

			require.ErrorIs(t, err, tt.want)
		})
	}

	var zero commands.UpsertAdminCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrUpsertAdminCommandIsNotConstructed)
}
