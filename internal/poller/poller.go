package poller

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ontwatch/internal/collector"
	"ontwatch/internal/config"
	"ontwatch/internal/domain/ont"
	"ontwatch/internal/events"
	"ontwatch/internal/logger"
	"ontwatch/internal/probe"
	"ontwatch/internal/usecase/notification"
	"ontwatch/internal/usecase/occupancy"
	"ontwatch/internal/usecase/outage"
)

// Poller drives the liveness state machine and the occupancy fetch on
// independent intervals. Both tasks run on one goroutine, so work is
// sequential by construction and device updates within a cycle come
// from one consistent snapshot.
type Poller struct {
	onts          ont.Repository
	outages       *outage.Service
	notifications *notification.Service
	occupancy     *occupancy.Service
	collector     collector.Collector
	prober        probe.Prober
	events        events.Publisher
	cfg           config.PollerConfig

	now func() time.Time
}

func New(
	onts ont.Repository,
	outages *outage.Service,
	notifications *notification.Service,
	occ *occupancy.Service,
	coll collector.Collector,
	prober probe.Prober,
	publisher events.Publisher,
	cfg config.PollerConfig,
) *Poller {
	if publisher == nil {
		publisher = events.Noop{}
	}

	return &Poller{
		onts:          onts,
		outages:       outages,
		notifications: notifications,
		occupancy:     occ,
		collector:     coll,
		prober:        prober,
		events:        publisher,
		cfg:           cfg,
		now:           time.Now,
	}
}

// Run loops until the context is canceled. A failing task is logged,
// waits out the failure backoff and the loop continues; nothing in
// here terminates the process.
func (p *Poller) Run(ctx context.Context) {
	logger.Info("Poller starting",
		zap.Duration("liveness_interval", p.cfg.LivenessInterval),
		zap.Duration("occupancy_interval", p.cfg.OccupancyInterval),
	)

	liveness := time.NewTicker(p.cfg.LivenessInterval)
	defer liveness.Stop()
	occupancyTick := time.NewTicker(p.cfg.OccupancyInterval)
	defer occupancyTick.Stop()

	// First pass right away rather than one full interval in.
	p.runTask(ctx, "liveness", p.LivenessCycle)
	p.runTask(ctx, "occupancy", p.OccupancyCycle)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Poller stopped")
			return
		case <-liveness.C:
			p.runTask(ctx, "liveness", p.LivenessCycle)
		case <-occupancyTick.C:
			p.runTask(ctx, "occupancy", p.OccupancyCycle)
		}
	}
}

func (p *Poller) runTask(ctx context.Context, name string, task func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}

	if err := task(ctx); err != nil {
		logger.Warn("Poller task failed, continuing after backoff",
			zap.String("task", name),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
		case <-time.After(p.cfg.FailureBackoff):
		}
	}
}

type transition struct {
	device    ont.ONT
	oldStatus ont.Status
	at        time.Time
}

// LivenessCycle probes every terminal sequentially against one
// snapshot, then merges only the dynamic fields onto a fresh re-read of
// the collection so concurrent identity edits survive.
func (p *Poller) LivenessCycle(ctx context.Context) error {
	snapshot, err := p.onts.List(ctx)
	if err != nil {
		return fmt.Errorf("snapshot fleet: %w", err)
	}

	logger.Debug("Liveness cycle starting", zap.Int("devices", len(snapshot)))

	updates := make(map[int]ont.Dynamic, len(snapshot))
	transitions := []transition{}

	for _, o := range snapshot {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if o.Address == "" {
			logger.Info("Skipping ONT without address",
				zap.Int("ont_id", o.ID),
				zap.String("name", o.Name),
			)
			continue
		}

		reachable := p.prober.Probe(ctx, o.Address)
		oldStatus := o.Status
		now := p.now()

		o.ApplyProbe(reachable, now)
		updates[o.ID] = o.Dynamic()

		if o.Status != oldStatus {
			transitions = append(transitions, transition{device: o, oldStatus: oldStatus, at: now})
		}
	}

	if err := p.onts.MergeDynamic(ctx, updates); err != nil {
		return fmt.Errorf("merge dynamic fields: %w", err)
	}

	for _, t := range transitions {
		p.fanOutTransition(ctx, t)
	}

	return nil
}

// fanOutTransition records the outage interval, appends a notification
// and publishes the event. Each side effect fails independently so one
// bad device never blocks the rest of the cycle.
func (p *Poller) fanOutTransition(ctx context.Context, t transition) {
	eventTime := t.at.Format(time.RFC3339)
	newStatus := t.device.Status

	logger.Info("ONT status changed",
		zap.Int("ont_id", t.device.ID),
		zap.String("name", t.device.Name),
		zap.String("old_status", string(t.oldStatus)),
		zap.String("new_status", string(newStatus)),
	)

	if err := p.outages.RecordTransition(ctx, t.device.ID, t.device.Name, t.oldStatus, newStatus, eventTime); err != nil {
		logger.Error("Failed to record outage transition",
			zap.Int("ont_id", t.device.ID),
			zap.Error(err),
		)
	}

	deviceID := t.device.ID
	deviceName := t.device.Name
	req := &notification.AppendRequest{
		Timestamp:  eventTime,
		DeviceID:   &deviceID,
		DeviceName: &deviceName,
	}
	if newStatus == ont.StatusOn {
		req.Message = fmt.Sprintf("ONT %s is back online", deviceName)
		req.Type = "success"
	} else {
		req.Message = fmt.Sprintf("ONT %s went down (%s)", deviceName, newStatus)
		req.Type = "warning"
	}
	if _, err := p.notifications.Append(ctx, req); err != nil {
		logger.Error("Failed to append status notification",
			zap.Int("ont_id", t.device.ID),
			zap.Error(err),
		)
	}

	p.events.PublishStatusChange(events.StatusChange{
		DeviceID:   t.device.ID,
		DeviceName: t.device.Name,
		OldStatus:  t.oldStatus,
		NewStatus:  newStatus,
		Timestamp:  eventTime,
	})
}

// OccupancyCycle pulls the active-session list from the access
// controller and feeds both the trend series and the snapshot log. A
// collector failure means no data this cycle.
func (p *Poller) OccupancyCycle(ctx context.Context) error {
	sessions, err := p.collector.FetchActiveSessions(ctx)
	if err != nil {
		return fmt.Errorf("fetch active sessions: %w", err)
	}

	if _, err := p.occupancy.RecordHistory(ctx, len(sessions)); err != nil {
		logger.Error("Failed to record history point", zap.Error(err))
	}

	if _, err := p.occupancy.LogSessions(ctx, sessions); err != nil {
		logger.Error("Failed to append occupancy log entry", zap.Error(err))
	}

	logger.Debug("Occupancy cycle complete", zap.Int("sessions", len(sessions)))

	return nil
}
