// Package merchant implements the Merchant aggregate: the selling party
// credited with sale proceeds when an order's payment settles.
package merchant

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for merchant operations.
var (
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrMerchantIsNotConstructed = errors.New("Merchant must be created via NewMerchant constructor")
)

// Merchant holds the merchant identity and the balance credited by
// earnings accrual. The core never debits merchant balances.
type Merchant struct {
	id      kernel.UUID
	name    string
	balance float64
	guard   guard.ConstructorGuard
}

// NewMerchant creates a merchant with a zero balance.
func NewMerchant(id kernel.UUID, name string) (*Merchant, error) {
	m := &Merchant{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setID(id), m.setName(name)); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMerchant reconstructs a Merchant aggregate from persistent storage.
func RestoreMerchant(id kernel.UUID, name string, balance float64) (*Merchant, error) {
	m, err := NewMerchant(id, name)
	if err != nil {
		return nil, err
	}

	if balance < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance",
			fmt.Errorf("%v is negative", balance))
	}

	m.balance = balance
	return m, nil
}

// Validate ensures the Merchant was created through a constructor.
func (m *Merchant) Validate() error {
	if m == nil {
		return ErrMerchantIsNotConstructed
	}
	return m.guard.Validate(ErrMerchantIsNotConstructed)
}

// ID returns the merchant identifier.
func (m *Merchant) ID() kernel.UUID { return m.id }

// Name returns the merchant's display name.
func (m *Merchant) Name() string { return m.name }

// Balance returns the accrued balance.
func (m *Merchant) Balance() float64 { return m.balance }

// CreditBalance adds a positive sale-proceeds amount to the balance.
func (m *Merchant) CreditBalance(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not greater than 0", amount))
	}
	m.balance += amount
	return nil
}

func (m *Merchant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Merchant) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	m.name = name
	return nil
}
