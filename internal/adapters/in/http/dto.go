package http

import "time"

// Error is the JSON error envelope for all non-payment endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPointDTO is a latitude/longitude pair in request and response bodies.
type GeoPointDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	TotalAmount   float64      `json:"total_amount"`
	DeliveryFee   float64      `json:"delivery_fee"`
	Destination   *GeoPointDTO `json:"destination,omitempty"`
	MerchantID    string       `json:"merchant_id,omitempty"`
	PaymentMethod string       `json:"payment_method,omitempty"`
}

// CreateOrderResponse returns the new order's identity and, for Click
// payments, the checkout redirect.
type CreateOrderResponse struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url,omitempty"`
}

// DispatchResponse describes the courier selected by automatic dispatch.
type DispatchResponse struct {
	OrderID     string  `json:"order_id"`
	CourierID   string  `json:"courier_id"`
	CourierName string  `json:"courier_name"`
	Score       float64 `json:"score"`
}

// AssignCourierRequest is the body of POST /api/v1/admin/orders/:id/assign.
type AssignCourierRequest struct {
	CourierID string `json:"courier_id"`
}

// UpdateOrderStatusRequest is the body of PUT /api/v1/delivery/orders/:id.
// Force bypasses the transition graph and is meant for administrators.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Force  bool   `json:"force,omitempty"`
}

// TrackOrderResponse is the customer-facing tracking view. Courier fields
// appear only while the order is actively being delivered.
type TrackOrderResponse struct {
	OrderID         string       `json:"order_id"`
	Status          string       `json:"status"`
	PaymentStatus   string       `json:"payment_status"`
	Destination     *GeoPointDTO `json:"destination,omitempty"`
	CourierName     string       `json:"courier_name,omitempty"`
	CourierPhone    string       `json:"courier_phone,omitempty"`
	CourierLocation *GeoPointDTO `json:"courier_location,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	FinishedAt      *time.Time   `json:"finished_at,omitempty"`
}

// ActiveOrderResponse is one row of GET /api/v1/orders/active.
type ActiveOrderResponse struct {
	OrderID       string    `json:"order_id"`
	CourierID     string    `json:"courier_id,omitempty"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateCourierRequest is the body of POST /api/v1/couriers.
type CreateCourierRequest struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone,omitempty"`
	Rating float64 `json:"rating"`
}

// CreateCourierResponse returns the new courier's identity.
type CreateCourierResponse struct {
	CourierID string `json:"courier_id"`
}

// CreateMerchantRequest is the body of POST /api/v1/merchants.
type CreateMerchantRequest struct {
	Name string `json:"name"`
}

// CreateMerchantResponse returns the new merchant's identity.
type CreateMerchantResponse struct {
	MerchantID string `json:"merchant_id"`
}

// CourierResponse is one row of GET /api/v1/couriers.
type CourierResponse struct {
	CourierID           string       `json:"courier_id"`
	Name                string       `json:"name"`
	Phone               string       `json:"phone,omitempty"`
	Online              bool         `json:"online"`
	Location            *GeoPointDTO `json:"location,omitempty"`
	Rating              float64      `json:"rating"`
	CompletedDeliveries int          `json:"completed_deliveries"`
	Balance             float64      `json:"balance"`
}

// UpdateLocationRequest is the body of PUT /api/v1/couriers/:id/location.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SetCourierStatusRequest is the body of PUT /api/v1/couriers/:id/status.
type SetCourierStatusRequest struct {
	Online bool `json:"online"`
}

// ClickCallbackResponse is the webhook envelope Click expects. The endpoint
// always answers HTTP 200; Error carries the protocol verdict.
type ClickCallbackResponse struct {
	ClickTransID      string `json:"click_trans_id"`
	MerchantTransID   string `json:"merchant_trans_id"`
	MerchantPrepareID string `json:"merchant_prepare_id,omitempty"`
	MerchantConfirmID string `json:"merchant_confirm_id,omitempty"`
	Error             int    `json:"error"`
	ErrorNote         string `json:"error_note"`
}
