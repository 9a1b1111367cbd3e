package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateTaskStatusCommandHandler_Handle(t *testing.T) {
	courierID := kernel.NewUUID()
	courierActor := ports.Principal{Subject: courierID, Role: kernel.RoleCourier}
	adminActor := ports.Principal{Subject: kernel.NewUUID(), Role: kernel.RoleAdmin}

	tests := []struct {
		name       string
		from       task.Status
		to         string
		actor      ports.Principal
		wantStatus task.Status
		wantErr    error
	}{
		{name: "courier picks up", from: task.Accepted, to: "picked_up", actor: courierActor, wantStatus: task.PickedUp},
		{name: "courier delivers", from: task.PickedUp, to: "delivered", actor: courierActor, wantStatus: task.Delivered},
		{name: "admin cancels", from: task.Assigned, to: "cancelled", actor: adminActor, wantStatus: task.Cancelled},
		{name: "admin cannot deliver", from: task.PickedUp, to: "delivered", actor: adminActor, wantErr: errs.ErrForbidden},
		{
			name: "other courier", from: task.Accepted, to: "picked_up",
			actor:   ports.Principal{Subject: kernel.NewUUID(), Role: kernel.RoleCourier},
			wantErr: errs.ErrForbidden,
		},
		{name: "skip a step", from: task.Assigned, to: "delivered", actor: courierActor, wantErr: task.ErrIllegalTransition},
		{name: "cancel after pickup", from: task.PickedUp, to: "cancelled", actor: courierActor, wantErr: task.ErrIllegalTransition},
		{name: "accept through status", from: task.Assigned, to: "accepted", actor: courierActor, wantErr: errs.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			tk := restoreTask(t, tt.from, &courierID, false)
			cmd, err := commands.NewUpdateTaskStatusCommand(tk.ID(), tt.to, tt.actor)
			require.NoError(t, err)

			taskRepo := new(MockTaskRepository)
			uow := new(MockUoW)
			factory := new(MockUoWFactory)
			publisher := new(MockPublisher)

			factory.On("Create").Return(uow)
			uow.On("Begin", ctx).Return(nil)
			uow.On("TaskRepository").Return(taskRepo)
			uow.On("Commit", ctx).Return(nil)
			uow.On("Rollback", ctx).Return(nil)
			taskRepo.On("GetForUpdate", ctx, tk.ID()).Return(tk, nil)
			taskRepo.On("Update", ctx, tk).Return(nil)
			publisher.On("Publish", ctx, mock.Anything, ports.EventTaskStatus, mock.Anything).Return(nil)

			handler := commands.NewUpdateTaskStatusCommandHandler(factory, publisher, discardLogger())
			got, err := handler.Handle(ctx, cmd)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				uow.AssertNotCalled(t, "Commit", ctx)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status())
			publisher.AssertCalled(t, "Publish", ctx, ports.AdminChannel, ports.EventTaskStatus, mock.Anything)
			publisher.AssertCalled(t, "Publish", ctx, ports.CourierChannel(courierID), ports.EventTaskStatus, mock.Anything)
		})
	}
}

func TestNewUpdateTaskStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateTaskStatusCommand(kernel.NewUUID(), "lost", ports.Principal{Subject: kernel.NewUUID(), Role: kernel.RoleAdmin})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
