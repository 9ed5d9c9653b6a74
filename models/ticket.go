package models

import "time"

// Service ticket lifecycle. The chat orchestrator only ever creates or
// updates tickets in StatusPending; later transitions belong to the
// ticketing workflow.
const (
	StatusPending          = "Pending"
	StatusAccepted         = "Accepted"
	StatusInRepair         = "In Repair"
	StatusReadyForDelivery = "Ready for Delivery"
	StatusDelivered        = "Delivered"
	StatusDeclined         = "Declined"
	StatusCancelled        = "Cancelled"
)

// TrackingReceived is the initial customer-facing tracking state.
const TrackingReceived = "Request Received"

// ServiceTicket is a repair booking request raised by a customer.
type ServiceTicket struct {
	ID           string     `bson:"id" json:"id"`
	TicketNumber string     `bson:"ticket_number" json:"ticketNumber"`
	CustomerID   string     `bson:"customer_id,omitempty" json:"customerId,omitempty"` // empty until linked
	CustomerName string     `bson:"customer_name" json:"customerName"`
	Phone        string     `bson:"phone" json:"phone"`
	Brand        string     `bson:"brand" json:"brand"`
	ModelNumber  string     `bson:"model_number,omitempty" json:"modelNumber,omitempty"`
	ScreenSize   string     `bson:"screen_size,omitempty" json:"screenSize,omitempty"`
	PrimaryIssue string     `bson:"primary_issue" json:"primaryIssue"`
	Description  string     `bson:"description" json:"description"` // append-only across chat updates
	Address      string     `bson:"address,omitempty" json:"address,omitempty"`
	MediaURLs    []string   `bson:"media_urls,omitempty" json:"mediaUrls,omitempty"`
	Status       string     `bson:"status" json:"status"`
	Tracking     string     `bson:"tracking_status" json:"trackingStatus"`
	Source       string     `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updatedAt"`
	ExpiresAt    *time.Time `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
}
