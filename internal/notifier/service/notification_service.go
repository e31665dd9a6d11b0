package service

import (
	"context"
	"strings"
	"time"

	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/common"
)

// NotificationService handles ad-hoc notifications submitted by clients.
type NotificationService interface {
	Send(ctx context.Context, req *dto.SendNotificationRequest) (*dto.SendNotificationResponse, error)
	Broadcast(ctx context.Context, req *dto.BroadcastRequest) (*dto.BroadcastResponse, error)
}

// NewNotificationService creates a new notification service.
func NewNotificationService(dispatcher Dispatcher) NotificationService {
	return &notificationService{
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

type notificationService struct {
	dispatcher Dispatcher
	now        func() time.Time
}

// Send delivers to one token. A delivery failure is reported in the response,
// not as an error.
func (s *notificationService) Send(ctx context.Context, req *dto.SendNotificationRequest) (*dto.SendNotificationResponse, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return nil, apperror.NewValidation("token", "token required")
	}

	n := dto.Notification{
		Title: strings.TrimSpace(req.Title),
		Body:  req.Body,
		Data:  req.Data,
	}
	if n.Title == "" {
		n.Title = common.DefaultNotificationTitle
	}
	if n.Data == nil {
		n.Data = map[string]any{}
	}

	result := s.dispatcher.NotifyOne(ctx, token, n)
	return &dto.SendNotificationResponse{
		Success: result.Delivered,
		Notification: dto.SentNotification{
			Token:  token,
			Title:  n.Title,
			Body:   n.Body,
			Data:   n.Data,
			SentAt: s.now(),
		},
		Error: result.Error,
	}, nil
}

func (s *notificationService) Broadcast(ctx context.Context, req *dto.BroadcastRequest) (*dto.BroadcastResponse, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" && body == "" {
		return nil, apperror.NewValidation("body", "title or body required")
	}
	if title == "" {
		title = common.DefaultNotificationTitle
	}
	data := req.Data
	if data == nil {
		data = map[string]any{}
	}

	result, err := s.dispatcher.Broadcast(ctx, dto.Notification{Title: title, Body: req.Body, Data: data})
	if err != nil {
		return nil, err
	}
	return &dto.BroadcastResponse{
		Success:         true,
		BroadcastResult: result,
	}, nil
}
