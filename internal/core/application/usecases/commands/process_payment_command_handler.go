package commands

import (
	"context"
	"crypto/md5" //nolint:gosec //mandated by the Click signature scheme
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/paymentlog"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Click response codes. The webhook always answers HTTP 200; these codes in
// the body are the protocol-level verdict.
const (
	CodeSuccess          = 0
	CodeSignCheckFailed  = -1
	CodeIncorrectAmount  = -2
	CodeActionNotFound   = -3
	CodeAlreadyPaid      = -4
	CodeOrderNotFound    = -5
	CodeInternalError    = -7
	CodeTransactionError = -9
)

// providerClick names the gateway in order payment fields and audit rows.
const providerClick = "click"

// amountTolerance absorbs float formatting differences between the gateway
// and the stored total.
const amountTolerance = 0.01

// PaymentCallbackResult is the body of the webhook response. Click retries
// any callback not answered with CodeSuccess, so every field the gateway
// echoes back must be populated even on errors.
type PaymentCallbackResult struct {
	ClickTransID      string
	MerchantTransID   string
	MerchantPrepareID string
	MerchantConfirmID string
	Error             int
	ErrorNote         string
}

// ClickConfig carries the merchant cabinet credentials the webhook verifies
// callbacks against.
type ClickConfig struct {
	ServiceID string
	SecretKey string
}

// ProcessPaymentCommandHandler implements the Click two-phase webhook.
//
// Phase PREPARE (action=0) verifies the signature, the order, and the
// amount, and answers with a prepare id. Phase COMPLETE (action=1) settles
// the payment, opportunistically advances a Delivered order to Paid, and
// accrues earnings, all in one transaction.
//
// Every callback, valid or not, leaves exactly one audit row. The audit
// write happens outside the business transaction so rejected callbacks are
// still recorded.
type ProcessPaymentCommandHandler struct {
	uowFactory  SettlementUoWFactory
	paymentLog  ports.PaymentLogRepository
	config      ClickConfig
	fallbackFee float64
	logger      *slog.Logger
}

// NewProcessPaymentCommandHandler creates a handler for Click callbacks.
func NewProcessPaymentCommandHandler(
	uowFactory SettlementUoWFactory,
	paymentLog ports.PaymentLogRepository,
	config ClickConfig,
	fallbackFee float64,
	logger *slog.Logger,
) ProcessPaymentCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return ProcessPaymentCommandHandler{
		uowFactory:  uowFactory,
		paymentLog:  paymentLog,
		config:      config,
		fallbackFee: fallbackFee,
		logger:      logger,
	}
}

// Handle processes one Click callback. Protocol-level rejections come back
// inside the result, never as a Go error; the error return is reserved for
// the transport layer and stays nil even on internal failures (those map to
// CodeInternalError).
func (h ProcessPaymentCommandHandler) Handle(
	ctx context.Context,
	command ProcessPaymentCommand,
) (result PaymentCallbackResult, err error) {
	if err = command.Validate(); err != nil {
		return PaymentCallbackResult{}, err
	}

	result = PaymentCallbackResult{
		ClickTransID:      command.ClickTransID(),
		MerchantTransID:   command.MerchantTransID(),
		MerchantPrepareID: command.MerchantPrepareID(),
	}

	defer func() {
		h.appendAuditRow(ctx, command, result)
	}()

	if !h.signatureValid(command) || command.ServiceID() != h.config.ServiceID {
		result.Error = CodeSignCheckFailed
		result.ErrorNote = "SIGN CHECK FAILED"
		return result, nil
	}

	switch command.Action() {
	case ActionPrepare:
		h.handlePrepare(ctx, command, &result)
	case ActionComplete:
		h.handleComplete(ctx, command, &result)
	default:
		result.Error = CodeActionNotFound
		result.ErrorNote = "Action not found"
	}

	return result, nil
}

func (h ProcessPaymentCommandHandler) handlePrepare(
	ctx context.Context,
	command ProcessPaymentCommand,
	result *PaymentCallbackResult,
) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.fail(result, err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, code, note := h.loadOrder(ctx, uow, command)
	if code != CodeSuccess {
		result.Error = code
		result.ErrorNote = note
		return
	}

	if code, note = checkPayable(aggregate, command); code != CodeSuccess {
		result.Error = code
		result.ErrorNote = note
		return
	}

	result.MerchantPrepareID = prepareID(aggregate)
	result.ErrorNote = "Success"
}

func (h ProcessPaymentCommandHandler) handleComplete(
	ctx context.Context,
	command ProcessPaymentCommand,
	result *PaymentCallbackResult,
) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.fail(result, err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, code, note := h.loadOrder(ctx, uow, command)
	if code != CodeSuccess {
		result.Error = code
		result.ErrorNote = note
		return
	}

	// Replay of an already-settled transaction is answered as success so
	// the gateway stops retrying. The settled order is authoritative, so
	// the replay short-circuits ahead of the amount check: a retry with a
	// garbled amount must not flip a confirmed payment into an error.
	if aggregate.IsPaid() && aggregate.PaymentID() == command.ClickTransID() {
		result.MerchantConfirmID = prepareID(aggregate)
		result.ErrorNote = "Already confirmed"
		return
	}

	if code, note = checkPayable(aggregate, command); code != CodeSuccess {
		result.Error = code
		result.ErrorNote = note
		return
	}

	// Click reports its own failure or user cancellation in the error field.
	if command.ErrorCode() < 0 {
		result.Error = CodeTransactionError
		result.ErrorNote = "Transaction cancelled"
		return
	}

	loadedStatus := aggregate.Status()

	if err := aggregate.SettlePayment(providerClick, command.ClickTransID()); err != nil {
		h.fail(result, err)
		return
	}

	// A paid delivery that already reached its destination advances to Paid
	// and settles earnings now. Orders paid mid-flight only flip their
	// payment status; accrual waits for the later transition into Paid.
	if loadedStatus == order.Delivered {
		if err := aggregate.TransitionTo(order.Paid); err != nil {
			h.fail(result, err)
			return
		}

		if err := accrueEarnings(ctx, uow, aggregate, h.fallbackFee); err != nil {
			h.fail(result, err)
			return
		}
	}

	if err := uow.OrderRepository().UpdateInStatus(ctx, aggregate, loadedStatus); err != nil {
		h.fail(result, err)
		return
	}

	if err := uow.Commit(ctx); err != nil {
		h.fail(result, err)
		return
	}

	result.MerchantConfirmID = prepareID(aggregate)
	result.ErrorNote = "Success"
}

// loadOrder resolves merchant_trans_id to an order aggregate.
func (h ProcessPaymentCommandHandler) loadOrder(
	ctx context.Context,
	uow SettlementUoW,
	command ProcessPaymentCommand,
) (*order.Order, int, string) {
	orderID, err := kernel.UUIDFromString(command.MerchantTransID())
	if err != nil {
		return nil, CodeOrderNotFound, "Order does not exist"
	}

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, CodeOrderNotFound, "Order does not exist"
	}
	if err != nil {
		h.logger.Error("payment callback failed to load order",
			"order_id", orderID.String(), "error", err)
		return nil, CodeInternalError, "Internal error"
	}

	return aggregate, CodeSuccess, ""
}

// checkPayable verifies the order can accept this payment: correct amount,
// not cancelled, not already paid by another transaction.
func checkPayable(aggregate *order.Order, command ProcessPaymentCommand) (int, string) {
	if diff := aggregate.TotalAmount() - command.Amount(); diff > amountTolerance ||
		diff < -amountTolerance {
		return CodeIncorrectAmount, "Incorrect parameter amount"
	}

	if aggregate.Status() == order.Cancelled {
		return CodeTransactionError, "Transaction cancelled"
	}

	if aggregate.IsPaid() {
		return CodeAlreadyPaid, "Already paid"
	}

	return CodeSuccess, ""
}

func (h ProcessPaymentCommandHandler) fail(result *PaymentCallbackResult, err error) {
	h.logger.Error("payment callback failed",
		"click_trans_id", result.ClickTransID,
		"merchant_trans_id", result.MerchantTransID,
		"error", err)

	result.Error = CodeInternalError
	result.ErrorNote = "Internal error"
}

// signatureValid recomputes the MD5 signature and compares it in constant
// time. The signed string is
//
//	click_trans_id + service_id + secret_key + merchant_trans_id +
//	[merchant_prepare_id when action=1] + amount + action + sign_time
func (h ProcessPaymentCommandHandler) signatureValid(command ProcessPaymentCommand) bool {
	var sb strings.Builder
	sb.WriteString(command.ClickTransID())
	sb.WriteString(command.ServiceID())
	sb.WriteString(h.config.SecretKey)
	sb.WriteString(command.MerchantTransID())
	if command.Action() == ActionComplete {
		sb.WriteString(command.MerchantPrepareID())
	}
	sb.WriteString(formatAmount(command.Amount()))
	sb.WriteString(strconv.Itoa(command.Action()))
	sb.WriteString(command.SignTime())

	sum := md5.Sum([]byte(sb.String())) //nolint:gosec //mandated by the Click signature scheme
	expected := hex.EncodeToString(sum[:])
	provided := strings.ToLower(strings.TrimSpace(command.SignString()))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

// formatAmount renders the amount the way Click signs it: no trailing
// zeros, no decimal point for whole values.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// prepareID derives a stable prepare identifier from the order. Click only
// requires the value to be echoed back on completion, so the creation
// timestamp serves without an extra table.
func prepareID(aggregate *order.Order) string {
	return strconv.FormatInt(aggregate.CreatedAt().Unix(), 10)
}

// appendAuditRow records the callback verdict. Audit failures are logged
// and swallowed: the gateway response must not depend on the audit trail.
func (h ProcessPaymentCommandHandler) appendAuditRow(
	ctx context.Context,
	command ProcessPaymentCommand,
	result PaymentCallbackResult,
) {
	entry, err := paymentlog.NewEntry(
		providerClick,
		command.MerchantTransID(),
		command.RawPayload(),
		actionName(command.Action()),
		result.Error != CodeSignCheckFailed,
		result.Error,
		result.ErrorNote,
	)
	if err == nil {
		err = h.paymentLog.Add(ctx, entry)
	}
	if err != nil {
		h.logger.Error("failed to append payment audit row",
			"click_trans_id", command.ClickTransID(), "error", err)
	}
}

func actionName(action int) string {
	switch action {
	case ActionPrepare:
		return "prepare"
	case ActionComplete:
		return "complete"
	default:
		return fmt.Sprintf("unknown(%d)", action)
	}
}
