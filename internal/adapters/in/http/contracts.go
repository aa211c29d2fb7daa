package http

// Request and response contracts for the REST API. Hand-written; the API
// surface is small enough that a codegen step would cost more than it saves.

// Error is the uniform error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the payload for POST /api/v1/orders.
type PlaceOrderRequest struct {
	CustomerID string `json:"customer_id"`
	Date       string `json:"date"`
	TimeBucket string `json:"time_bucket"`
}

// PlaceOrderResponse returns the identifier of the placed order.
type PlaceOrderResponse struct {
	OrderID string `json:"order_id"`
}

// TransitionRequest is the payload for POST /api/v1/orders/:id/transition.
// ActorID and Reason are optional.
type TransitionRequest struct {
	Target    string `json:"target"`
	ActorRole string `json:"actor_role"`
	ActorID   string `json:"actor_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// TransitionResponse reports the committed outcome of a transition request.
type TransitionResponse struct {
	OrderID  string `json:"order_id"`
	Previous string `json:"previous"`
	New      string `json:"new"`
	NoOp     bool   `json:"no_op"`
}

// PaymentStatusRequest is the payload for PUT /api/v1/orders/:id/payment.
type PaymentStatusRequest struct {
	Status string `json:"status"`
}

// SlotAvailability is one entry of GET /api/v1/availability.
type SlotAvailability struct {
	Date      string `json:"date"`
	Bucket    string `json:"bucket"`
	Limit     int    `json:"limit"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
}

// HistoryEntry is one entry of GET /api/v1/orders/:id/history.
type HistoryEntry struct {
	Previous   string `json:"previous"`
	New        string `json:"new"`
	ActorRole  string `json:"actor_role"`
	ActorID    string `json:"actor_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
