package http

// Request and response bodies for the freight ledger HTTP API.

// Error is the uniform error response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LegRequest describes one itinerary leg in an order creation request.
type LegRequest struct {
	Party     string `json:"party"`
	Target    int    `json:"target"`
	Incentive int64  `json:"incentive"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	OrderID string       `json:"orderId"`
	Shipper string       `json:"shipper"`
	Legs    []LegRequest `json:"legs"`
}

// SubmitOrderRequest is the body of POST /api/v1/orders/:id/submit.
// SubmittedAt is RFC3339; when omitted the server stamps the time of receipt.
type SubmitOrderRequest struct {
	Origin      string `json:"origin"`
	SubmittedAt string `json:"submittedAt,omitempty"`
}

// LaunchLegRequest is the body of POST /api/v1/carriers/:id/launch.
type LaunchLegRequest struct {
	OrderID  string `json:"orderId"`
	LegIndex int    `json:"legIndex"`
}

// ReportLegRequest is the body of POST /api/v1/carriers/:id/report.
// ReportedAt is RFC3339; when omitted the server stamps the time of receipt.
type ReportLegRequest struct {
	OrderID    string `json:"orderId"`
	LegIndex   int    `json:"legIndex"`
	Code       int    `json:"code"`
	ReportedAt string `json:"reportedAt,omitempty"`
}

// RegisterCarrierRequest is the body of POST /api/v1/carriers.
type RegisterCarrierRequest struct {
	CarrierID       string `json:"carrierId"`
	Name            string `json:"name"`
	PayoutRecipient string `json:"payoutRecipient"`
}

// SettleRequest is the body of POST /api/v1/settlements.
type SettleRequest struct {
	Recipient string `json:"recipient"`
}

// CarrierRating is one entry of GET /api/v1/carriers/ratings.
type CarrierRating struct {
	Carrier        string `json:"carrier"`
	Name           string `json:"name,omitempty"`
	AssignedTotal  int64  `json:"assignedTotal"`
	CompletedTotal int64  `json:"completedTotal"`
}

// RecipientBalance is one entry of GET /api/v1/balances.
type RecipientBalance struct {
	Recipient         string `json:"recipient"`
	AccruedTotal      int64  `json:"accruedTotal"`
	PendingSettlement int64  `json:"pendingSettlement"`
}

// OpenOrder is one entry of GET /api/v1/orders/open.
type OpenOrder struct {
	ID             string `json:"id"`
	TrackingID     int64  `json:"trackingId"`
	Status         string `json:"status"`
	CurrentStep    int    `json:"currentStep"`
	TotalIncentive int64  `json:"totalIncentive"`
}

// AuditEntry is one entry of GET /api/v1/audit.
type AuditEntry struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Payload    string `json:"payload"`
	OccurredAt string `json:"occurredAt"`
}
