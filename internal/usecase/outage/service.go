package outage

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"ontwatch/internal/domain/ont"
	domain "ontwatch/internal/domain/outage"
	"ontwatch/internal/logger"
)

// Service derives open/closed downtime intervals from status
// transitions and summarizes them per device.
type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// RecordTransition opens an interval on ON→non-ON and closes the
// most-recently-opened open interval on non-ON→ON. Repeated identical
// statuses are ignored so an OFF_RTO→OFF_RTO cycle never duplicates a
// record.
func (s *Service) RecordTransition(ctx context.Context, deviceID int, deviceName string, oldStatus, newStatus ont.Status, eventTime string) error {
	if oldStatus == newStatus {
		return nil
	}

	records, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	switch {
	case oldStatus == ont.StatusOn && newStatus != ont.StatusOn:
		records = append(records, domain.Record{
			DeviceID:   deviceID,
			DeviceName: deviceName,
			StartTime:  eventTime,
			EndTime:    nil,
		})
		return s.repo.Save(ctx, records)

	case oldStatus != ont.StatusOn && newStatus == ont.StatusOn:
		for i := len(records) - 1; i >= 0; i-- {
			if records[i].DeviceID == deviceID && records[i].EndTime == nil {
				end := eventTime
				records[i].EndTime = &end
				return s.repo.Save(ctx, records)
			}
		}
		// No open record: should not happen under correct state-machine
		// usage, treated as a no-op.
		logger.Debug("Recovery transition without open outage record",
			zap.Int("device_id", deviceID),
			zap.String("device_name", deviceName),
		)
		return nil

	default:
		// non-ON → non-ON tier change, the interval stays open.
		return nil
	}
}

// List returns all records sorted by start time, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Record, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartTime > records[j].StartTime
	})

	return records, nil
}

// Summarize groups records per device and sorts by outage count, then
// by most recent start.
func (s *Service) Summarize(ctx context.Context) ([]domain.Summary, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	byDevice := map[int]*domain.Summary{}
	order := []int{}

	for i := range records {
		rec := &records[i]
		sum, ok := byDevice[rec.DeviceID]
		if !ok {
			sum = &domain.Summary{
				DeviceID:   rec.DeviceID,
				DeviceName: rec.DeviceName,
			}
			byDevice[rec.DeviceID] = sum
			order = append(order, rec.DeviceID)
		}

		sum.OutageCount++
		if sum.LastStart == "" || rec.StartTime > sum.LastStart {
			sum.LastStart = rec.StartTime
			sum.LastEnd = rec.EndTime
		}
		if rec.EndTime == nil {
			sum.Ongoing = true
		}
	}

	summaries := make([]domain.Summary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, *byDevice[id])
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].OutageCount != summaries[j].OutageCount {
			return summaries[i].OutageCount > summaries[j].OutageCount
		}
		return summaries[i].LastStart > summaries[j].LastStart
	})

	return summaries, nil
}

// ClearAll drops all recorded intervals.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.repo.Save(ctx, []domain.Record{})
}
