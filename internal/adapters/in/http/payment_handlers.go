package http

import (
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// ClickWebhook handles POST /api/v1/payments/click. The gateway posts
// form-encoded callbacks and expects HTTP 200 on every request; protocol
// rejections travel in the envelope's error field. Malformed numeric fields
// are passed through as zero values and fail the signature check.
func (s *Server) ClickWebhook(ctx echo.Context) error {
	form, err := ctx.FormParams()
	if err != nil {
		return badRequest(ctx, "Invalid form body")
	}

	amount, _ := strconv.ParseFloat(form.Get("amount"), 64)
	action, actionErr := strconv.Atoi(form.Get("action"))
	if actionErr != nil {
		action = -1
	}
	errorCode, _ := strconv.Atoi(form.Get("error"))

	cmd := commands.NewProcessPaymentCommand(
		form.Get("click_trans_id"),
		form.Get("service_id"),
		form.Get("merchant_trans_id"),
		form.Get("merchant_prepare_id"),
		amount,
		action,
		errorCode,
		form.Get("sign_time"),
		form.Get("sign_string"),
		form.Encode(),
	)

	result, err := s.processPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		// Only a not-constructed command reaches here; answer in protocol
		// form so the gateway does not retry forever.
		result = commands.PaymentCallbackResult{
			ClickTransID:    form.Get("click_trans_id"),
			MerchantTransID: form.Get("merchant_trans_id"),
			Error:           commands.CodeInternalError,
			ErrorNote:       "Internal error",
		}
	}

	return ctx.JSON(http.StatusOK, ClickCallbackResponse{
		ClickTransID:      result.ClickTransID,
		MerchantTransID:   result.MerchantTransID,
		MerchantPrepareID: result.MerchantPrepareID,
		MerchantConfirmID: result.MerchantConfirmID,
		Error:             result.Error,
		ErrorNote:         result.ErrorNote,
	})
}
