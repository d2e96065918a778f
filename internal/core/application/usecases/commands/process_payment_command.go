package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrProcessPaymentCommandIsNotConstructed = errors.New(
	"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
)

// Click webhook actions.
const (
	// ActionPrepare is Click's first callback phase (action=0): the gateway
	// asks whether the order can accept a payment.
	ActionPrepare = 0

	// ActionComplete is Click's second callback phase (action=1): the
	// payment went through and the order should settle.
	ActionComplete = 1
)

// ProcessPaymentCommand carries one Click webhook callback. Fields mirror
// the gateway's form parameters verbatim; validation happens in the handler
// because protocol errors must come back as response codes, not Go errors.
type ProcessPaymentCommand struct {
	clickTransID      string
	serviceID         string
	merchantTransID   string
	merchantPrepareID string
	amount            float64
	action            int
	errorCode         int
	signTime          string
	signString        string
	rawPayload        string

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command from Click's callback fields.
// merchantTransID is the order the customer paid for; rawPayload is the
// original form body kept for the audit trail.
func NewProcessPaymentCommand(
	clickTransID string,
	serviceID string,
	merchantTransID string,
	merchantPrepareID string,
	amount float64,
	action int,
	errorCode int,
	signTime string,
	signString string,
	rawPayload string,
) ProcessPaymentCommand {
	return ProcessPaymentCommand{
		clickTransID:      clickTransID,
		serviceID:         serviceID,
		merchantTransID:   merchantTransID,
		merchantPrepareID: merchantPrepareID,
		amount:            amount,
		action:            action,
		errorCode:         errorCode,
		signTime:          signTime,
		signString:        signString,
		rawPayload:        rawPayload,
		guard:             guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// ClickTransID returns the gateway transaction identifier.
func (c ProcessPaymentCommand) ClickTransID() string { return c.clickTransID }

// ServiceID returns the Click service identifier from the callback.
func (c ProcessPaymentCommand) ServiceID() string { return c.serviceID }

// MerchantTransID returns the order reference the payment targets.
func (c ProcessPaymentCommand) MerchantTransID() string { return c.merchantTransID }

// MerchantPrepareID returns the prepare identifier echoed on completion.
func (c ProcessPaymentCommand) MerchantPrepareID() string { return c.merchantPrepareID }

// Amount returns the paid amount as reported by the gateway.
func (c ProcessPaymentCommand) Amount() float64 { return c.amount }

// Action returns the callback phase: ActionPrepare or ActionComplete.
func (c ProcessPaymentCommand) Action() int { return c.action }

// ErrorCode returns the gateway-side error, negative when Click reports a
// failed or cancelled payment.
func (c ProcessPaymentCommand) ErrorCode() int { return c.errorCode }

// SignTime returns the signature timestamp from the callback.
func (c ProcessPaymentCommand) SignTime() string { return c.signTime }

// SignString returns the MD5 signature from the callback.
func (c ProcessPaymentCommand) SignString() string { return c.signString }

// RawPayload returns the original form body for the audit trail.
func (c ProcessPaymentCommand) RawPayload() string { return c.rawPayload }
