// File: repairdesk/handlers/bundle.go
package handlers

import (
	customerRepoPkg "repairdesk/database/repository/customer"
	ticketRepoPkg "repairdesk/database/repository/ticket"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	TicketRepo   ticketRepoPkg.TicketRepository
	CustomerRepo customerRepoPkg.CustomerRepository

	// Conversational endpoints
	ChatHandler       gin.HandlerFunc
	InspectHandler    gin.HandlerFunc
	TranscribeHandler gin.HandlerFunc

	// Ticket endpoints
	ListTicketsHandler gin.HandlerFunc
	GetTicketHandler   gin.HandlerFunc
}
