package worker

import (
	"github.com/spec-kit/school-portal/internal/events"
	"github.com/spec-kit/school-portal/internal/service"
)

// StartNotificationWorker registers the activity feed and notification handlers on dispatcher.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, activity *service.ActivityService) {
	if activity != nil {
		activity.RegisterHandlers(dispatcher)
	}
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
}
