package controllers

import (
	"queueflow-backend/queue"
	"queueflow-backend/services"

	"gorm.io/gorm"
)

var (
	issuer       *queue.Issuer
	recalculator *queue.Recalculator
	notifier     *services.NotificationService
)

// Setup wires the queue core and notification service into the handlers.
// Called once from main after the database is connected; the recalculator
// is returned so main can hand it to the interval scheduler.
func Setup(db *gorm.DB) *queue.Recalculator {
	store := queue.NewStore(db)
	issuer = queue.NewIssuer(store)
	recalculator = queue.NewRecalculator(store)
	notifier = services.NewNotificationService(db)
	return recalculator
}
