package ont

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "ontwatch/internal/domain/ont"
	"ontwatch/internal/logger"
	"ontwatch/internal/usecase/notification"
	appErrors "ontwatch/pkg/errors"
	"ontwatch/pkg/utils"
)

// Service implements fleet management use cases. The poller never goes
// through this service; it owns only the dynamic fields and writes them
// via Repository.MergeDynamic.
type Service struct {
	repo          domain.Repository
	notifications *notification.Service
}

func NewService(repo domain.Repository, notifications *notification.Service) *Service {
	return &Service{repo: repo, notifications: notifications}
}

func (s *Service) List(ctx context.Context) ([]domain.ONT, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.ONT, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *CreateONTRequest) (*domain.ONT, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	o := &domain.ONT{
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Location:   req.Location,
		Address:    req.Address,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Status:     domain.StatusOff,
		RetryCount: 0,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.notify(ctx, fmt.Sprintf("New ONT added: %s (%s)", o.Name, o.ExternalID), "success", o)

	logger.Info("ONT created",
		zap.Int("ont_id", o.ID),
		zap.String("name", o.Name),
		zap.String("event", "ont_created"),
	)

	return o, nil
}

func (s *Service) Update(ctx context.Context, id int, req *UpdateONTRequest) (*domain.ONT, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldName := o.Name
	oldExternalID := o.ExternalID

	if req.ExternalID != nil {
		o.ExternalID = *req.ExternalID
	}
	if req.Name != nil {
		o.Name = *req.Name
	}
	if req.Location != nil {
		o.Location = *req.Location
	}
	if req.Address != nil {
		o.Address = *req.Address
	}
	if req.Latitude != nil {
		o.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		o.Longitude = *req.Longitude
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	s.notify(ctx, fmt.Sprintf("ONT updated: %s (%s) -> %s (%s)", oldName, oldExternalID, o.Name, o.ExternalID), "info", o)

	return o, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, fmt.Sprintf("ONT removed: %s (%s)", o.Name, o.ExternalID), "warning", o)

	logger.Info("ONT deleted",
		zap.Int("ont_id", id),
		zap.String("name", o.Name),
		zap.String("event", "ont_deleted"),
	)

	return nil
}

func (s *Service) notify(ctx context.Context, message, kind string, o *domain.ONT) {
	deviceID := o.ID
	deviceName := o.Name
	if _, err := s.notifications.Append(ctx, &notification.AppendRequest{
		Message:    message,
		Type:       kind,
		DeviceID:   &deviceID,
		DeviceName: &deviceName,
	}); err != nil {
		logger.Warn("Failed to append notification", zap.Error(err))
	}
}
