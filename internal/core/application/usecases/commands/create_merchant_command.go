package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateMerchantCommandIsNotConstructed = errors.New(
		"CreateMerchantCommand must be created via NewCreateMerchantCommand constructor",
	)
	ErrMerchantNameIsRequired = errors.New("name is required")
)

// CreateMerchantCommand represents a request to register a selling merchant,
// the party credited with sale proceeds when payments settle.
type CreateMerchantCommand struct { //nolint:recvcheck //using for validation
	merchantID kernel.UUID
	name       string

	guard guard.ConstructorGuard
}

// NewCreateMerchantCommand creates a command to register a new merchant.
func NewCreateMerchantCommand(merchantID kernel.UUID, name string) (CreateMerchantCommand, error) {
	merchantCommand := CreateMerchantCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		merchantCommand.setMerchantID(merchantID),
		merchantCommand.setName(name),
	); err != nil {
		return CreateMerchantCommand{}, err
	}

	return merchantCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateMerchantCommand) Validate() error {
	return c.guard.Validate(ErrCreateMerchantCommandIsNotConstructed)
}

// MerchantID returns the unique identifier for the merchant.
func (c CreateMerchantCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// Name returns the merchant's display name.
func (c CreateMerchantCommand) Name() string {
	return c.name
}

func (c *CreateMerchantCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}

	c.merchantID = merchantID
	return nil
}

func (c *CreateMerchantCommand) setName(name string) error {
	if name == "" {
		return ErrMerchantNameIsRequired
	}

	c.name = name
	return nil
}
