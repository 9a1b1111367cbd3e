// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
// Real-time events and push notifications are emitted only after a successful commit.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	AdminRepoFactory interface {
		AdminRepository() ports.AdminRepository
	}

	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// AdminUoW is used by admin login and seeding.
	AdminUoW interface {
		TxManager
		AdminRepoFactory
	}

	AdminUoWFactory interface {
		Create() AdminUoW
	}

	// LocationUoW checks the reporting courier and appends the report in one transaction.
	LocationUoW interface {
		TxManager
		CourierRepoFactory
		LocationRepoFactory
	}

	LocationUoWFactory interface {
		Create() LocationUoW
	}

	// WalletUoW manages ledger-only operations.
	WalletUoW interface {
		TxManager
		WalletRepoFactory
	}

	WalletUoWFactory interface {
		Create() WalletUoW
	}

	// UoW manages transactions across tasks, participants and wallets.
	// Used for commands that coordinate changes between multiple aggregate types.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   t, err := uow.TaskRepository().GetForUpdate(ctx, taskID)
	//   w, err := uow.WalletRepository().GetByOwner(ctx, customerID, wallet.OwnerCustomer)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CourierRepoFactory
		CustomerRepoFactory
		TaskRepoFactory
		WalletRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// NearestCourierFinder locates the best courier for a pickup point.
// It returns nil without error when no courier qualifies.
type NearestCourierFinder interface {
	FindNearest(ctx context.Context, pickup kernel.GeoPoint) (*kernel.UUID, error)
}

// TaskAssigner is satisfied by AssignTaskCommandHandler; task creation and the
// pending-task job reuse it so every assignment follows the same locking path.
type TaskAssigner interface {
	Handle(ctx context.Context, command AssignTaskCommand) (AssignTaskResult, error)
}
