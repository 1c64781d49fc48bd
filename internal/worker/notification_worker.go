package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/classroom-service/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to the
// event dispatcher. Dispatch is synchronous, so there is no goroutine to
// manage; "worker" here is the subscription lifecycle.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification handlers registered")
	}
}
