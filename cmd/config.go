// Package cmd wires configuration and dependency construction for the
// dispatch service binary.
package cmd

import "time"

// Config carries all environment-driven settings.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Click merchant cabinet credentials. Empty values disable checkout
	// link generation; the webhook then rejects every callback on signature.
	ClickServiceID  string
	ClickSecretKey  string
	ClickMerchantID string
	ClickReturnURL  string

	// WeightsPath points at the scoring weights JSON; WeightsRefresh is the
	// TTL of the cached snapshot.
	WeightsPath    string
	WeightsRefresh time.Duration

	// FallbackDeliveryFee substitutes for orders stored with a zero fee.
	FallbackDeliveryFee float64

	// DispatchMaxAttempts bounds retry-job dispatch runs per order.
	DispatchMaxAttempts int
}
