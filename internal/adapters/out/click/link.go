// Package click integrates with the Click payment gateway: building the
// hosted checkout link customers are redirected to, and the signature scheme
// shared with the webhook flow.
package click

import (
	"net/url"
	"strconv"
)

// checkoutURL is Click's hosted payment page.
const checkoutURL = "https://my.click.uz/services/pay"

// LinkBuilder builds hosted checkout links for Click payments. ServiceID and
// MerchantID come from the Click merchant cabinet.
type LinkBuilder struct {
	serviceID  string
	merchantID string
	returnURL  string
}

// NewLinkBuilder creates a link builder for the given Click credentials.
// returnURL is where Click redirects the customer after payment; empty means
// no redirect parameter is attached.
func NewLinkBuilder(serviceID, merchantID, returnURL string) *LinkBuilder {
	return &LinkBuilder{
		serviceID:  serviceID,
		merchantID: merchantID,
		returnURL:  returnURL,
	}
}

// PaymentLink returns the checkout URL for the given order reference and
// amount. orderRef travels as transaction_param and comes back in the
// webhook as merchant_trans_id, which is how the callback is matched to the
// order.
func (b *LinkBuilder) PaymentLink(orderRef string, amount float64) string {
	params := url.Values{}
	params.Set("service_id", b.serviceID)
	params.Set("merchant_id", b.merchantID)
	params.Set("amount", strconv.FormatFloat(amount, 'f', 2, 64))
	params.Set("transaction_param", orderRef)
	if b.returnURL != "" {
		params.Set("return_url", b.returnURL)
	}

	return checkoutURL + "?" + params.Encode()
}
