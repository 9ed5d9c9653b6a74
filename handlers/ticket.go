package handlers

import (
	"net/http"
	"strconv"

	ticketRepo "repairdesk/database/repository/ticket"

	"github.com/gin-gonic/gin"
)

// ListTicketsHandler returns service tickets, newest first. Supports
// ?status= and ?limit= filters.
func ListTicketsHandler(tickets ticketRepo.TicketRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")
		limit := int64(100)
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = parsed
		}

		list, err := tickets.GetAll(status, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tickets": list, "count": len(list)})
	}
}

// GetTicketHandler returns a single ticket by ID.
func GetTicketHandler(tickets ticketRepo.TicketRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, err := tickets.GetByID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ticket"})
			return
		}
		if ticket == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}
		c.JSON(http.StatusOK, ticket)
	}
}
