package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrTotalAmountIsInvalid = errors.New("totalAmount must be greater than 0")
	ErrDeliveryFeeIsInvalid = errors.New("deliveryFee must be non-negative and below totalAmount")
)

// CreateOrderCommand represents a request to register a new delivery order.
// Destination and merchant are optional: customers may order without usable
// coordinates, and not every order has a merchant party.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, 150000, 15000, &destination, &merchantID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	totalAmount float64
	deliveryFee float64
	destination *kernel.GeoPoint
	merchantID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates the order ID, a positive total, and a fee within [0, total].
func NewCreateOrderCommand(
	orderID kernel.UUID,
	totalAmount float64,
	deliveryFee float64,
	destination *kernel.GeoPoint,
	merchantID *kernel.UUID,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setAmounts(totalAmount, deliveryFee),
		orderCommand.setDestination(destination),
		orderCommand.setMerchantID(merchantID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TotalAmount returns the order total in the marketplace currency.
func (c CreateOrderCommand) TotalAmount() float64 {
	return c.totalAmount
}

// DeliveryFee returns the delivery fee share of the total.
func (c CreateOrderCommand) DeliveryFee() float64 {
	return c.deliveryFee
}

// Destination returns the delivery point, nil when unknown.
func (c CreateOrderCommand) Destination() *kernel.GeoPoint {
	return c.destination
}

// MerchantID returns the selling merchant, nil when absent.
func (c CreateOrderCommand) MerchantID() *kernel.UUID {
	return c.merchantID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setAmounts(totalAmount, deliveryFee float64) error {
	if totalAmount <= 0 {
		return ErrTotalAmountIsInvalid
	}
	if deliveryFee < 0 || deliveryFee > totalAmount {
		return ErrDeliveryFeeIsInvalid
	}

	c.totalAmount = totalAmount
	c.deliveryFee = deliveryFee
	return nil
}

func (c *CreateOrderCommand) setDestination(destination *kernel.GeoPoint) error {
	if destination == nil {
		return nil
	}
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setMerchantID(merchantID *kernel.UUID) error {
	if merchantID == nil {
		return nil
	}
	if err := merchantID.Validate(); err != nil {
		return err
	}

	c.merchantID = merchantID
	return nil
}
