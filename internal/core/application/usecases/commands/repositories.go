// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler declares the narrowest combination it needs.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// MerchantRepoFactory provides access to the merchant repository within a transaction.
	MerchantRepoFactory interface {
		MerchantRepository() ports.MerchantRepository
	}

	// EarningRepoFactory provides access to the earning repository within a transaction.
	EarningRepoFactory interface {
		EarningRepository() ports.EarningRepository
	}

	// DispatchLogRepoFactory provides access to the dispatch log repository within a transaction.
	DispatchLogRepoFactory interface {
		DispatchLogRepository() ports.DispatchLogRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW manages transactions across order and courier aggregates.
	// Used by manual assignment and release, which touch both.
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}

	// MerchantUoW manages transactions for merchant-only operations.
	MerchantUoW interface {
		TxManager
		MerchantRepoFactory
	}

	// MerchantUoWFactory creates new merchant unit of work instances.
	MerchantUoWFactory interface {
		Create() MerchantUoW
	}

	// ReleaseUoW manages transactions for courier rejections: the order
	// returning to the queue plus the attempt trail recording the decline.
	ReleaseUoW interface {
		TxManager
		OrderRepoFactory
		DispatchLogRepoFactory
	}

	// ReleaseUoWFactory creates new release unit of work instances.
	ReleaseUoWFactory interface {
		Create() ReleaseUoW
	}

	// DispatchUoW manages transactions for automatic dispatch: the order
	// being assigned, the candidate couriers, and the attempt audit trail.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		DispatchLogRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// SettlementUoW manages transactions for lifecycle updates and payment
	// settlement, which may accrue earnings to couriers and merchants.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		MerchantRepoFactory
		EarningRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}
)
