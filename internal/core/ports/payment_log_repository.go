package ports

import (
	"context"

	"dispatch/internal/core/domain/model/paymentlog"
)

// PaymentLogRepository defines the persistence contract for the payment
// callback audit trail. Unlike the aggregate repositories it is not bound
// to a unit of work: a callback row must survive even when the business
// transaction it describes rolls back.
type PaymentLogRepository interface {
	// Add persists a payment callback record.
	Add(ctx context.Context, entry *paymentlog.Entry) error
}
