package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/config"
	"github.com/spec-kit/school-portal/internal/events"
)

// MailMessage is a plain-text notification e-mail.
type MailMessage struct {
	To      string
	Subject string
	Text    string
}

// Mailer delivers notification e-mails.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	mailer     Mailer
}

// NewNotificationService creates the service. With a nil mailer e-mails are only logged.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig, mailer Mailer) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     loggerOrNop(logger),
		cfg:        cfg,
		mailer:     mailer,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventStaffApproved, n.handleStaffDecision)
	n.dispatcher.Subscribe(events.EventStaffRejected, n.handleStaffDecision)
	n.dispatcher.Subscribe(events.EventVoiceRoomRequest, n.handleVoiceRoomRequested)
	n.dispatcher.Subscribe(events.EventInquirySent, n.handleInquirySent)
	n.dispatcher.Subscribe(events.EventInquiryReplied, n.handleInquiryReplied)
}

func (n *NotificationService) handleStaffDecision(ctx context.Context, event events.Event) error {
	n.logger.Info("StaffDecision", zap.String("staff_id", event.SubjectID), zap.String("event_type", string(event.Type)))
	payload, ok := event.Payload.(events.StaffPayload)
	if !ok {
		return nil
	}
	msg := MailMessage{
		To:      payload.Email,
		Subject: "Your portal join request was approved",
		Text:    "Hello " + payload.Name + ", you can now sign in to the school portal.",
	}
	if event.Type == events.EventStaffRejected {
		msg.Subject = "Your portal join request was declined"
		msg.Text = "Hello " + payload.Name + ", your join request was not accepted."
	}
	return n.sendEmail(ctx, event, msg)
}

func (n *NotificationService) handleVoiceRoomRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("VoiceRoomRequested", zap.String("request_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInquirySent(ctx context.Context, event events.Event) error {
	n.logger.Info("InquirySent", zap.String("inquiry_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInquiryReplied(ctx context.Context, event events.Event) error {
	n.logger.Info("InquiryReplied", zap.String("inquiry_id", event.SubjectID))
	n.sendWebhookNotificationStub(ctx, event)
	payload, ok := event.Payload.(events.InboxPayload)
	if !ok {
		return nil
	}
	return n.sendEmail(ctx, event, MailMessage{
		To:      payload.ParentEmail,
		Subject: "Your inquiry has a reply",
		Text:    "A teacher replied to your message. Sign in to the school portal to read it.",
	})
}

func (n *NotificationService) sendEmail(ctx context.Context, event events.Event, msg MailMessage) error {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || strings.TrimSpace(msg.To) == "" {
		return nil
	}
	if n.mailer == nil {
		n.logger.Debug("sendEmailNotificationStub",
			zap.String("from", n.cfg.EmailFrom),
			zap.String("to", msg.To),
			zap.String("subject_id", event.SubjectID),
			zap.String("event_type", string(event.Type)))
		return nil
	}
	return n.mailer.Send(ctx, msg)
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
