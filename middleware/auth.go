package middleware

import (
	"errors"
	"net/http"
	"strings"

	customerRepo "repairdesk/database/repository/customer"
	"repairdesk/models"
	"repairdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallerContextKey is the gin context key holding the resolved caller.
const CallerContextKey = "caller"

var errBadToken = errors.New("invalid bearer token")

// resolveCaller turns a Bearer token into a caller context. It returns
// (nil, nil) when no token is presented and errBadToken when the token is
// malformed, forged, or names an unknown account. A flaky customer lookup
// downgrades to guest rather than blocking the conversation.
func resolveCaller(c *gin.Context, customers customerRepo.CustomerRepository) (*models.CallerContext, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, nil
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errBadToken
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	customerID, err := utils.ExtractIDFromToken(tokenString)
	if err != nil || customerID == "" {
		return nil, errBadToken
	}

	customer, err := customers.GetByID(customerID)
	if err != nil {
		zap.L().Warn("caller lookup failed", zap.String("customer_id", customerID), zap.Error(err))
		return nil, nil
	}
	if customer == nil {
		return nil, errBadToken
	}

	return &models.CallerContext{
		CustomerID: customer.ID,
		Name:       customer.Name,
		Phone:      customer.Phone,
		Address:    customer.Address,
		Role:       customer.Role,
	}, nil
}

// OptionalCallerMiddleware resolves a Bearer token into a caller context
// when one is presented. Anonymous requests pass through as guests.
func OptionalCallerMiddleware(customers customerRepo.CustomerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := resolveCaller(c, customers)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if caller != nil {
			c.Set(CallerContextKey, caller)
		}
		c.Next()
	}
}

// StaffAuthMiddleware requires a valid token whose account has a staff or
// admin role. Used on the ticket browsing endpoints.
func StaffAuthMiddleware(customers customerRepo.CustomerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := resolveCaller(c, customers)
		if err != nil || caller == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if caller.Role != "admin" && caller.Role != "staff" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}
		c.Set(CallerContextKey, caller)
		c.Next()
	}
}

// CallerFromContext returns the resolved caller, or nil for guests.
func CallerFromContext(c *gin.Context) *models.CallerContext {
	if v, ok := c.Get(CallerContextKey); ok {
		if caller, ok := v.(*models.CallerContext); ok {
			return caller
		}
	}
	return nil
}
