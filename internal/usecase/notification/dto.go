package notification

// AppendRequest is the boundary and poller input for a new ledger
// entry. Timestamp is optional; an empty value means "now".
type AppendRequest struct {
	Message    string  `json:"message" validate:"required"`
	Type       string  `json:"type" validate:"omitempty,oneof=info success warning error"`
	Timestamp  string  `json:"timestamp"`
	DeviceID   *int    `json:"device_id"`
	DeviceName *string `json:"device_name"`
}
