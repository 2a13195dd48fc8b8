// Package worker wires background consumers of project and service-order
// events at startup.
package worker

import (
	"github.com/spec-kit/service-order-api/internal/service"
)

// StartNotificationWorker subscribes the notification service to the domain
// event stream so project changes and approval flips fan out to the
// configured channels. The dispatcher is synchronous; handlers run inline on
// publish, so registration is all the worker needs to do.
func StartNotificationWorker(notifications *service.NotificationService) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
}
