package analytics

import domain "ontwatch/internal/domain/occupancy"

type DaySummary struct {
	Date    string `json:"date"`
	Peak    int    `json:"peak"`
	Trough  int    `json:"trough"`
	Average int    `json:"average"`
}

type MonthSummary struct {
	Month   string `json:"month"`
	Peak    int    `json:"peak"`
	Trough  int    `json:"trough"`
	Average int    `json:"average"`
}

type Realtime struct {
	Timestamp  string `json:"timestamp"`
	Count      int    `json:"count"`
	UniqueMACs int    `json:"unique_macs"`
}

type Summary struct {
	PeakUsers     int     `json:"peak_users"`
	TroughUsers   int     `json:"trough_users"`
	AverageUsers  float64 `json:"average_users"`
	UniqueDevices int     `json:"unique_devices"`
}

// Payload is the full aggregator output served to the analytics page.
type Payload struct {
	Summary        Summary           `json:"summary"`
	DailySummary   []DaySummary      `json:"daily_summary"`
	MonthlySummary []MonthSummary    `json:"monthly_summary"`
	Realtime       Realtime          `json:"realtime"`
	RawLogs        []domain.LogEntry `json:"raw_logs"`
	MonthFilter    string            `json:"month_filter"`
	NoDataForMonth bool              `json:"no_data_for_month"`
}
