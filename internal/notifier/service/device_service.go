package service

import (
	"context"
	"strings"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/logger"
)

// DeviceService defines the interface for managing device tokens.
type DeviceService interface {
	Register(ctx context.Context, req *dto.RegisterDeviceRequest) (*entity.DeviceToken, error)
	Unregister(ctx context.Context, req *dto.UnregisterDeviceRequest) error
}

// NewDeviceService creates a new device service.
func NewDeviceService(registry repository.DeviceRegistry, log *logger.Logger) DeviceService {
	return &deviceService{
		registry: registry,
		logger:   log,
	}
}

type deviceService struct {
	registry repository.DeviceRegistry
	logger   *logger.Logger
}

func (s *deviceService) Register(ctx context.Context, req *dto.RegisterDeviceRequest) (*entity.DeviceToken, error) {
	device, err := s.registry.Register(ctx, req.Token, req.UserID, entity.ParsePlatform(req.Platform))
	if err != nil {
		if !apperror.IsValidation(err) {
			s.logger.ErrorContext(ctx, "Failed to register device", logger.ErrorField(err))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "Device registered",
		logger.StringField("token", device.Token),
		logger.StringField("user_id", device.Owner),
		logger.StringField("platform", string(device.Platform)))
	return device, nil
}

func (s *deviceService) Unregister(ctx context.Context, req *dto.UnregisterDeviceRequest) error {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return apperror.NewValidation("token", "token required")
	}

	if err := s.registry.Unregister(ctx, token); err != nil {
		s.logger.ErrorContext(ctx, "Failed to unregister device", logger.ErrorField(err), logger.StringField("token", token))
		return err
	}

	s.logger.InfoContext(ctx, "Device unregistered", logger.StringField("token", token))
	return nil
}
