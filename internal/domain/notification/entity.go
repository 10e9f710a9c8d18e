package notification

import "errors"

// Type classifies a notification for display.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Notification is one entry of the append-only ledger. IDs are strictly
// increasing and never reused, even across deletions. Timestamps are
// RFC 3339 strings; the ledger orders them lexicographically.
type Notification struct {
	ID         int     `json:"id"`
	Message    string  `json:"message"`
	Type       Type    `json:"type"`
	Timestamp  string  `json:"timestamp"`
	DeviceID   *int    `json:"device_id"`
	DeviceName *string `json:"device_name"`
	Read       bool    `json:"read"`
}

var ErrInvalidShape = errors.New("notification missing required fields")

// Validate enforces the ledger schema: every entry needs an id, a
// message and a timestamp. A failing entry marks the whole ledger as
// corrupt.
func (n *Notification) Validate() error {
	if n.ID <= 0 || n.Message == "" || n.Timestamp == "" {
		return ErrInvalidShape
	}
	return nil
}

// NextID assigns max(existing)+1, so deleting an entry never frees its
// id for reuse.
func NextID(existing []Notification) int {
	maxID := 0
	for _, n := range existing {
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	return maxID + 1
}
