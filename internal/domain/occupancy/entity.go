package occupancy

// Session is one active hotspot session as reported by the access
// controller. Byte counters stay strings because the controller's API
// reports them that way and nothing downstream does arithmetic on them.
type Session struct {
	Address  string `json:"address"`
	MAC      string `json:"mac"`
	Uptime   string `json:"uptime"`
	BytesIn  string `json:"bytes_in"`
	BytesOut string `json:"bytes_out"`
}

// LogEntry is one occupancy snapshot. The timestamp stays a string so
// the analytics aggregator can skip unparsable entries instead of
// failing the whole load.
type LogEntry struct {
	Timestamp string    `json:"timestamp"`
	Sessions  []Session `json:"sessions"`
}

// HistoryPoint is the coarse trend series, distinct from the full log.
type HistoryPoint struct {
	Timestamp    string `json:"timestamp"`
	SessionCount int    `json:"session_count"`
}

// Retention caps, oldest entries dropped first.
const (
	MaxLogEntries    = 2000
	MaxHistoryPoints = 100
)
