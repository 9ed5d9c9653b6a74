package customerRepo

import "repairdesk/models"

// CustomerRepository defines read access to customer records. The chat
// orchestrator never creates or mutates customers.
type CustomerRepository interface {
	GetByID(id string) (*models.Customer, error)
	// FindByPhone matches on the normalized phone form.
	FindByPhone(phone string) (*models.Customer, error)
}
