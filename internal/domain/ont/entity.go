package ont

import "time"

// Status is the liveness tier of a terminal. It is derived only from
// the retry counter and the latest probe outcome, never set directly.
type Status string

const (
	StatusOn         Status = "ON"
	StatusOffWaiting Status = "OFF_WAITING"
	StatusOffRTO     Status = "OFF_RTO"
	StatusOff        Status = "OFF"
)

// ONT is a monitored network terminal. Identity and metadata fields are
// owned by the boundary; status, retry_count and last_seen are owned by
// the liveness poller.
type ONT struct {
	ID         int        `json:"id"`
	ExternalID string     `json:"external_id"`
	Name       string     `json:"name"`
	Location   string     `json:"location"`
	Address    string     `json:"address"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Status     Status     `json:"status"`
	RetryCount int        `json:"retry_count"`
	LastSeen   *time.Time `json:"last_seen"`
}

// Dynamic carries the three poller-owned fields for a merge back into
// the collection.
type Dynamic struct {
	Status     Status
	RetryCount int
	LastSeen   *time.Time
}

// ApplyProbe folds one probe outcome into the liveness state. A success
// resets the counter regardless of history; a failure advances it and
// re-derives the status tier.
func (o *ONT) ApplyProbe(reachable bool, now time.Time) {
	if reachable {
		o.Status = StatusOn
		o.RetryCount = 0
		t := now
		o.LastSeen = &t
		return
	}

	o.RetryCount++
	o.Status = statusForRetries(o.RetryCount)
}

// Dynamic snapshots the poller-owned fields.
func (o *ONT) Dynamic() Dynamic {
	return Dynamic{
		Status:     o.Status,
		RetryCount: o.RetryCount,
		LastSeen:   o.LastSeen,
	}
}

func statusForRetries(retries int) Status {
	switch {
	case retries <= 0:
		return StatusOn
	case retries == 1:
		return StatusOffWaiting
	case retries <= 5:
		return StatusOffRTO
	default:
		return StatusOff
	}
}
