package ticketRepo

import "repairdesk/models"

// TicketRepository defines data access for service tickets.
//
// Implementations run writes on their own background contexts so a booking
// that was promised to the customer still commits even if the HTTP caller
// disconnects mid-turn.
type TicketRepository interface {
	Create(ticket *models.ServiceTicket) error
	Update(ticket *models.ServiceTicket) error
	GetByID(id string) (*models.ServiceTicket, error)
	GetAll(status string, limit int64) ([]models.ServiceTicket, error)
	// FindLatestPendingByCustomerID returns the most recent Pending ticket
	// linked to the customer, or nil when none exists.
	FindLatestPendingByCustomerID(customerID string) (*models.ServiceTicket, error)
	// FindLatestPendingByPhone matches on the normalized phone form.
	FindLatestPendingByPhone(phone string) (*models.ServiceTicket, error)
	// FindExpired returns tickets whose media retention window has passed,
	// so the cleanup worker can purge their media before deletion.
	FindExpired(limit int64) ([]models.ServiceTicket, error)
	// DeleteExpired removes tickets whose media retention window has passed.
	DeleteExpired() (int64, error)
}
