// Package paymentlog implements the append-only payment gateway audit log:
// one row per inbound gateway request/response pair, including the raw
// payload and the signature verdict, kept for forensic reconciliation.
// Rows are never mutated or deleted by the core.
package paymentlog

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when using an improperly
// initialized Entry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one forensic audit row of the webhook reconciler. Failures
// (signature mismatch, amount mismatch) are first-class entries alongside
// successes to support fraud and ops review.
type Entry struct {
	id             kernel.UUID
	provider       string
	orderRef       string
	rawPayload     string
	action         string
	signatureValid bool
	responseCode   int
	note           string
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates an audit row for one gateway callback.
// orderRef is the gateway-supplied order reference as received, recorded
// even when it resolves to no order.
func NewEntry(
	provider string,
	orderRef string,
	rawPayload string,
	action string,
	signatureValid bool,
	responseCode int,
	note string,
) (*Entry, error) {
	if provider == "" {
		return nil, errs.NewValueIsRequiredError("provider")
	}

	return &Entry{
		id:             kernel.NewUUID(),
		provider:       provider,
		orderRef:       orderRef,
		rawPayload:     rawPayload,
		action:         action,
		signatureValid: signatureValid,
		responseCode:   responseCode,
		note:           note,
		createdAt:      time.Now().UTC(),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Entry was created through the constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// Provider returns the gateway name.
func (e *Entry) Provider() string { return e.provider }

// OrderRef returns the gateway-supplied order reference.
func (e *Entry) OrderRef() string { return e.orderRef }

// RawPayload returns the callback body as received.
func (e *Entry) RawPayload() string { return e.rawPayload }

// Action returns the declared gateway action.
func (e *Entry) Action() string { return e.action }

// SignatureValid returns the signature verdict.
func (e *Entry) SignatureValid() bool { return e.signatureValid }

// ResponseCode returns the numeric code answered to the gateway.
func (e *Entry) ResponseCode() int { return e.responseCode }

// Note returns the human-readable response note.
func (e *Entry) Note() string { return e.note }

// CreatedAt returns the callback timestamp.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
