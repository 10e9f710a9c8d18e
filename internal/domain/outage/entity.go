package outage

// Record is one downtime interval for a device. EndTime is nil while
// the outage is still open; the tracker keeps at most one open record
// per device id.
type Record struct {
	DeviceID   int     `json:"device_id"`
	DeviceName string  `json:"device_name"`
	StartTime  string  `json:"start_time"`
	EndTime    *string `json:"end_time"`
}

// Summary aggregates all records of one device.
type Summary struct {
	DeviceID    int     `json:"device_id"`
	DeviceName  string  `json:"device_name"`
	OutageCount int     `json:"outage_count"`
	LastStart   string  `json:"last_start"`
	LastEnd     *string `json:"last_end"`
	Ongoing     bool    `json:"ongoing"`
}
