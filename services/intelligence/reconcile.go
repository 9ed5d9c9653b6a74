// File: services/intelligence/reconcile.go
package ai

import (
	"fmt"
	"strings"
	"time"

	customerRepo "repairdesk/database/repository/customer"
	ticketRepo "repairdesk/database/repository/ticket"
	"repairdesk/models"
	"repairdesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Booking modes reported to the client.
const (
	ModeCreated = "created"
	ModeUpdated = "updated"
)

// ticketRetention is how long a chat-sourced ticket and its media are kept
// before the cleanup worker purges them, unless staff act on the ticket.
const ticketRetention = 30 * 24 * time.Hour

// Reconciler turns an extracted booking intent into a committed ticket,
// either updating the caller's open ticket or creating a fresh one.
type Reconciler struct {
	Tickets   ticketRepo.TicketRepository
	Customers customerRepo.CustomerRepository
}

// Apply merges the intent with the caller context and persists the result.
// Intent fields win over context fields; context fills the gaps. The open
// ticket is updated only when its brand and issue are compatible with the
// intent; anything else becomes a new ticket.
func (r *Reconciler) Apply(intent *models.BookingIntent, caller *models.CallerContext, mediaURLs []string) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	name, phone, address := mergeIdentity(intent, caller)
	phone = utils.NormalizePhone(phone)

	customerID := ""
	if caller != nil {
		customerID = caller.CustomerID
	}
	if customerID == "" && phone != "" {
		customer, err := r.Customers.FindByPhone(phone)
		if err != nil {
			logger.Warn("customer lookup by phone failed", zap.Error(err))
		} else if customer != nil {
			customerID = customer.ID
			if name == "" {
				name = customer.Name
			}
			if address == "" {
				address = customer.Address
			}
		}
	}

	existing, err := r.findOpenTicket(customerID, phone)
	if err != nil {
		logger.Warn("open ticket lookup failed", zap.Error(err))
	}

	if existing != nil && matchesExisting(intent, existing) {
		applyIntent(existing, intent, name, phone, address, mediaURLs)
		if existing.CustomerID == "" {
			existing.CustomerID = customerID
		}
		if err := r.Tickets.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to update ticket %s: %w", existing.ID, err)
		}
		logger.Info("booking reconciled into open ticket",
			zap.String("ticket_id", existing.ID),
			zap.String("ticket_number", existing.TicketNumber))
		return &models.BookingResult{Mode: ModeUpdated, Ticket: *existing}, nil
	}

	expires := time.Now().Add(ticketRetention)
	ticket := &models.ServiceTicket{
		ID:           uuid.NewString(),
		TicketNumber: newTicketNumber(),
		CustomerID:   customerID,
		CustomerName: name,
		Phone:        phone,
		Brand:        intent.Brand,
		ModelNumber:  intent.ModelNumber,
		ScreenSize:   intent.ScreenSize,
		PrimaryIssue: intent.Issue,
		Description:  intent.Description,
		Address:      address,
		MediaURLs:    mediaURLs,
		Status:       models.StatusPending,
		Tracking:     models.TrackingReceived,
		Source:       "chat",
		ExpiresAt:    &expires,
	}
	if err := r.Tickets.Create(ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	logger.Info("booking created new ticket",
		zap.String("ticket_id", ticket.ID),
		zap.String("ticket_number", ticket.TicketNumber))
	return &models.BookingResult{Mode: ModeCreated, Ticket: *ticket}, nil
}

// findOpenTicket prefers the customer link over the phone match.
func (r *Reconciler) findOpenTicket(customerID, phone string) (*models.ServiceTicket, error) {
	if customerID != "" {
		ticket, err := r.Tickets.FindLatestPendingByCustomerID(customerID)
		if err != nil || ticket != nil {
			return ticket, err
		}
	}
	return r.Tickets.FindLatestPendingByPhone(phone)
}

// FindOpenTicket exposes the open-ticket lookup for prompt composition.
func (r *Reconciler) FindOpenTicket(caller *models.CallerContext) (*models.ServiceTicket, error) {
	if caller == nil {
		return nil, nil
	}
	return r.findOpenTicket(caller.CustomerID, utils.NormalizePhone(caller.Phone))
}

// matchesExisting reports whether the intent targets the same repair as the
// open ticket. An absent field never disqualifies the match.
func matchesExisting(intent *models.BookingIntent, existing *models.ServiceTicket) bool {
	if intent.Brand != "" && !strings.EqualFold(intent.Brand, existing.Brand) {
		return false
	}
	if intent.Issue != "" && !strings.EqualFold(intent.Issue, existing.PrimaryIssue) {
		return false
	}
	return true
}

func applyIntent(ticket *models.ServiceTicket, intent *models.BookingIntent, name, phone, address string, mediaURLs []string) {
	if name != "" {
		ticket.CustomerName = name
	}
	if phone != "" {
		ticket.Phone = phone
	}
	if address != "" {
		ticket.Address = address
	}
	// The match already guarantees compatibility; the intent's spelling
	// becomes the ticket's.
	if intent.Brand != "" {
		ticket.Brand = intent.Brand
	}
	if intent.Issue != "" {
		ticket.PrimaryIssue = intent.Issue
	}
	if intent.ModelNumber != "" {
		ticket.ModelNumber = intent.ModelNumber
	}
	if intent.ScreenSize != "" {
		ticket.ScreenSize = intent.ScreenSize
	}
	if intent.Description != "" && !strings.Contains(ticket.Description, intent.Description) {
		if ticket.Description == "" {
			ticket.Description = intent.Description
		} else {
			ticket.Description += "\n[Update] " + intent.Description
		}
	}
	if len(mediaURLs) > 0 {
		ticket.MediaURLs = append(ticket.MediaURLs, mediaURLs...)
	}
}

// mergeIdentity resolves name, phone and address with intent values taking
// precedence over the caller context.
func mergeIdentity(intent *models.BookingIntent, caller *models.CallerContext) (name, phone, address string) {
	name = intent.Name
	phone = intent.Phone
	address = intent.Address
	if caller != nil {
		if name == "" {
			name = caller.Name
		}
		if phone == "" {
			phone = caller.Phone
		}
		if address == "" {
			address = caller.Address
		}
	}
	return name, phone, address
}

// newTicketNumber builds a customer-facing reference like SRV-20260831-4F2A.
// The random suffix avoids a per-day counter; the unique index on
// ticket_number catches the unlikely collision.
func newTicketNumber() string {
	date := time.Now().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("SRV-%s-%s", date, suffix)
}
