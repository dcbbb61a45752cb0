package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/partner-hub/internal/config"
	"github.com/spec-kit/partner-hub/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMemberInvited, n.handleMemberInvited)
	n.dispatcher.Subscribe(events.EventMemberRoleChanged, n.handleMemberRoleChanged)
	n.dispatcher.Subscribe(events.EventMemberStatusChanged, n.handleMemberStatusChanged)
	n.dispatcher.Subscribe(events.EventSessionChanged, n.handleSessionChanged)
}

func (n *NotificationService) handleMemberInvited(ctx context.Context, event events.Event) error {
	n.logger.Info("MemberInvited", zap.String("business_id", event.BusinessID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMemberRoleChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("MemberRoleChanged", zap.String("business_id", event.BusinessID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMemberStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("MemberStatusChanged", zap.String("business_id", event.BusinessID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSessionChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("SessionChanged", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("business_id", event.BusinessID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("business_id", event.BusinessID),
		zap.String("event_type", string(event.Type)))
}
