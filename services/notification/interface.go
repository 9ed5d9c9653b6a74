package notification

import (
	"context"
	"fmt"

	"repairdesk/config"
	"repairdesk/models"
	"repairdesk/utils"

	"firebase.google.com/go/v4/messaging"
)

// Notifier announces booking activity to staff devices.
type Notifier interface {
	BookingCreated(ctx context.Context, ticket *models.ServiceTicket, mode string) error
}

// FCMNotifier sends booking alerts to the staff FCM topic.
type FCMNotifier struct{}

func NewFCMNotifier() *FCMNotifier {
	return &FCMNotifier{}
}

// BookingCreated pushes a new-booking alert to the staff topic. Mode is
// "created" or "updated".
func (n *FCMNotifier) BookingCreated(ctx context.Context, ticket *models.ServiceTicket, mode string) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("BookingCreated: FCM client not initialized")
	}

	title := "New repair booking"
	if mode == "updated" {
		title = "Booking updated"
	}
	body := fmt.Sprintf("%s: %s %s (%s)", ticket.TicketNumber, ticket.Brand, ticket.PrimaryIssue, ticket.CustomerName)

	msg := &messaging.Message{
		Topic: config.AppConfig.StaffAlertTopic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"ticketId":     ticket.ID,
			"ticketNumber": ticket.TicketNumber,
			"mode":         mode,
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("BookingCreated: failed to send FCM message: %w", err)
	}
	return nil
}
