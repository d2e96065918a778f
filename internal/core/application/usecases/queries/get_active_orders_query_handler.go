package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves all non-terminal orders from the
// database. Uses direct SQL for optimal read performance in the CQRS
// pattern.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns every order outside Completed and
// Cancelled, oldest first, so stalled orders surface at the top.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			courier_id,
			status,
			payment_status,
			total_amount,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, int(order.Completed), int(order.Cancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            uuid.UUID
			courierID     *uuid.UUID
			status        int
			paymentStatus int
			totalAmount   float64
			createdAt     time.Time
		)

		if err = rows.Scan(
			&id, &courierID, &status, &paymentStatus, &totalAmount, &createdAt,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		response := GetActiveOrdersQueryResponse{
			ID:            orderID,
			Status:        order.Status(status).String(),
			PaymentStatus: order.PaymentStatus(paymentStatus).String(),
			TotalAmount:   totalAmount,
			CreatedAt:     createdAt,
		}

		if courierID != nil {
			assignee, idErr := kernel.UUIDFromBytes(courierID[:])
			if idErr != nil {
				return nil, idErr
			}
			response.CourierID = &assignee
		}

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
