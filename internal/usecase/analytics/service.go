package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	domain "ontwatch/internal/domain/occupancy"
	appErrors "ontwatch/pkg/errors"
)

// Timestamp layouts accepted in the occupancy log. Entries that match
// neither are skipped, not fatal.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Service reduces the occupancy log into daily, monthly and realtime
// summaries.
type Service struct {
	logs domain.LogRepository
	now  func() time.Time
}

func NewService(logs domain.LogRepository) *Service {
	return &Service{logs: logs, now: time.Now}
}

// Compute aggregates the whole log. monthFilter restricts the daily
// summary to one month ("MM" for the current year, or "YYYY-MM"); any
// other shape is ErrInvalidMonthFilter. An absent or empty log is
// ErrNoAnalyticsData.
func (s *Service) Compute(ctx context.Context, monthFilter string) (*Payload, error) {
	entries, err := s.logs.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, appErrors.ErrNoAnalyticsData
	}

	normalizedFilter, err := s.normalizeMonthFilter(monthFilter)
	if err != nil {
		return nil, err
	}

	dailyCounts := map[string][]int{}
	monthlyCounts := map[string][]int{}
	sessionCounts := []int{}
	allMACs := map[string]struct{}{}

	for i := range entries {
		ts, ok := parseTimestamp(entries[i].Timestamp)
		if !ok {
			continue
		}

		day := ts.Format("2006-01-02")
		month := ts.Format("2006-01")
		count := len(entries[i].Sessions)

		sessionCounts = append(sessionCounts, count)
		dailyCounts[day] = append(dailyCounts[day], count)
		monthlyCounts[month] = append(monthlyCounts[month], count)

		for _, sess := range entries[i].Sessions {
			if sess.MAC != "" {
				allMACs[sess.MAC] = struct{}{}
			}
		}
	}

	daily := make([]DaySummary, 0, len(dailyCounts))
	for day, counts := range dailyCounts {
		peak, trough, avg := reduce(counts)
		daily = append(daily, DaySummary{Date: day, Peak: peak, Trough: trough, Average: avg})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	monthly := make([]MonthSummary, 0, 12)
	for month, counts := range monthlyCounts {
		peak, trough, avg := reduce(counts)
		monthly = append(monthly, MonthSummary{Month: month, Peak: peak, Trough: trough, Average: avg})
	}
	monthly = prefillCurrentYear(monthly, s.now().Year())
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	payload := &Payload{
		Summary:        globalSummary(sessionCounts, len(allMACs)),
		DailySummary:   daily,
		MonthlySummary: monthly,
		Realtime:       realtimeFrom(entries),
		RawLogs:        tail(entries, 100),
		MonthFilter:    normalizedFilter,
	}

	if normalizedFilter != "" {
		payload.DailySummary, payload.NoDataForMonth = filterMonth(daily, normalizedFilter)
	}

	return payload, nil
}

func (s *Service) normalizeMonthFilter(filter string) (string, error) {
	if filter == "" {
		return "", nil
	}

	if len(filter) == 2 && isDigits(filter) {
		return fmt.Sprintf("%d-%s", s.now().Year(), filter), nil
	}

	if len(filter) == 7 && filter[4] == '-' {
		return filter, nil
	}

	return "", appErrors.ErrInvalidMonthFilter
}

// filterMonth restricts the daily summary to one month and completes it
// with zero placeholders for every calendar day, leap years included.
func filterMonth(daily []DaySummary, month string) ([]DaySummary, bool) {
	filtered := []DaySummary{}
	for _, d := range daily {
		if len(d.Date) >= 7 && d.Date[:7] == month {
			filtered = append(filtered, d)
		}
	}

	start, err := time.Parse("2006-01", month)
	if err != nil {
		// Filter shape was plausible but the month itself is not a
		// date; serve whatever matched.
		return filtered, len(filtered) == 0
	}

	existing := map[string]DaySummary{}
	for _, d := range filtered {
		existing[d.Date] = d
	}

	daysInMonth := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	completed := make([]DaySummary, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%s-%02d", month, day)
		if d, ok := existing[date]; ok {
			completed = append(completed, d)
		} else {
			completed = append(completed, DaySummary{Date: date})
		}
	}

	return completed, false
}

func prefillCurrentYear(monthly []MonthSummary, year int) []MonthSummary {
	existing := map[string]struct{}{}
	for _, m := range monthly {
		existing[m.Month] = struct{}{}
	}

	for m := 1; m <= 12; m++ {
		key := fmt.Sprintf("%d-%02d", year, m)
		if _, ok := existing[key]; !ok {
			monthly = append(monthly, MonthSummary{Month: key})
		}
	}

	return monthly
}

func realtimeFrom(entries []domain.LogEntry) Realtime {
	last := entries[len(entries)-1]

	macs := map[string]struct{}{}
	for _, sess := range last.Sessions {
		if sess.MAC != "" {
			macs[sess.MAC] = struct{}{}
		}
	}

	return Realtime{
		Timestamp:  last.Timestamp,
		Count:      len(last.Sessions),
		UniqueMACs: len(macs),
	}
}

func globalSummary(counts []int, uniqueDevices int) Summary {
	if len(counts) == 0 {
		return Summary{UniqueDevices: uniqueDevices}
	}

	peak, trough, _ := reduce(counts)
	sum := 0
	for _, c := range counts {
		sum += c
	}
	avg := math.Round(float64(sum)/float64(len(counts))*100) / 100

	return Summary{
		PeakUsers:     peak,
		TroughUsers:   trough,
		AverageUsers:  avg,
		UniqueDevices: uniqueDevices,
	}
}

func reduce(counts []int) (peak, trough, average int) {
	peak = counts[0]
	trough = counts[0]
	sum := 0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
		if c < trough {
			trough = c
		}
		sum += c
	}
	average = int(math.Round(float64(sum) / float64(len(counts))))
	return peak, trough, average
}

func tail(entries []domain.LogEntry, n int) []domain.LogEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
