package controllers

import (
	"context"

	"github.com/meinhoongagan/healthy-alternative/models"
	"go.uber.org/zap"
)

// Notifier sends booking emails. *utils.Mailer implements it.
type Notifier interface {
	SendBookingConfirmation(appt *models.Appointment, provider *models.Provider, service *models.Service) error
}

// EventPublisher emits domain events. *queue.Producer implements it.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// PhotoUploader re-hosts applicant photos. *utils.Uploader implements it.
type PhotoUploader interface {
	UploadFromURL(ctx context.Context, src, publicID string) (string, error)
}

// publish is fire-and-forget: the request has already succeeded.
func publish(ctx context.Context, events EventPublisher, log *zap.Logger, eventType, key string, payload interface{}) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, eventType, key, payload); err != nil {
		log.Warn("event not published", zap.String("event", eventType), zap.String("key", key), zap.Error(err))
	}
}
