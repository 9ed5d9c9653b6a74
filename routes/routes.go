package routes

import (
	"net/http"
	"time"

	"repairdesk/handlers"
	"repairdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAIRoutes registers the conversational endpoints. Chat and
// inspect work for guests; a Bearer token upgrades the caller context.
// The per-caller quota is consumed before any model call.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(middleware.OptionalCallerMiddleware(hb.CustomerRepo))
		api.POST("/chat", middleware.ChatQuotaMiddleware(), hb.ChatHandler)
		api.POST("/inspect", middleware.ChatQuotaMiddleware(), hb.InspectHandler)
		api.POST("/transcribe", hb.TranscribeHandler)
	}
}

// RegisterTicketRoutes registers staff-only ticket browsing endpoints.
func RegisterTicketRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/service-requests")
	{
		api.Use(middleware.StaffAuthMiddleware(hb.CustomerRepo))
		api.GET("", hb.ListTicketsHandler)
		api.GET("/:id", hb.GetTicketHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm RepairDesk"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAIRoutes(r, hb)
	RegisterTicketRoutes(r, hb)
}
