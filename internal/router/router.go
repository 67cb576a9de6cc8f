package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripstack/internal/config"
	"tripstack/internal/handler"
	"tripstack/internal/middleware"
	"tripstack/internal/service"
)

// Handlers bundles every HTTP handler wired into the engine.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Assistant *handler.AssistantHandler
	Flight    *handler.FlightHandler
	Billing   *handler.BillingHandler
	Calendar  *handler.CalendarHandler
	Trip      *handler.TripHandler
	Expense   *handler.ExpenseHandler
	Itinerary *handler.ItineraryHandler
	File      *handler.FileHandler
	Report    *handler.ReportHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, log *zap.SugaredLogger, authSvc service.AuthService, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Public assistant and flight routes. The mobile clients call these
	// before the user has signed in, during trip capture.
	v1.POST("/assistant/trip", h.Assistant.AssistTrip)
	v1.POST("/assistant/expense", h.Assistant.AssistExpense)
	v1.POST("/flights/status", h.Flight.Status)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Billing
	protected.POST("/billing/subscription", h.Billing.SubscriptionStatus)
	protected.POST("/billing/checkout", h.Billing.CreateCheckout)

	// Calendar sync
	protected.POST("/calendar/sync", h.Calendar.Sync)

	// Trip routes
	trips := protected.Group("/trips")
	trips.POST("", h.Trip.Create)
	trips.GET("", h.Trip.List)
	trips.GET("/:id", h.Trip.Get)
	trips.PUT("/:id", h.Trip.Update)
	trips.DELETE("/:id", h.Trip.Delete)
	trips.POST("/:id/itinerary", h.Itinerary.Create)
	trips.GET("/:id/itinerary", h.Itinerary.ListByTrip)
	trips.GET("/:id/report.pdf", h.Report.TripReportPDF)
	trips.GET("/:id/expenses.csv", h.Report.TripExpensesCSV)
	trips.GET("/:id/expenses.xlsx", h.Report.TripExpensesXLSX)
	trips.POST("/:id/report/email", h.Report.EmailTripReport)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", h.Expense.Create)
	expenses.GET("", h.Expense.List)
	expenses.GET("/export.csv", h.Report.ExpensesCSV)
	expenses.GET("/:id", h.Expense.Get)
	expenses.PUT("/:id", h.Expense.Update)
	expenses.DELETE("/:id", h.Expense.Delete)

	// Itinerary item routes (trip-scoped creation lives under /trips)
	itinerary := protected.Group("/itinerary")
	itinerary.PUT("/:id", h.Itinerary.Update)
	itinerary.DELETE("/:id", h.Itinerary.Delete)

	// Receipt file routes
	receipts := protected.Group("/receipts")
	receipts.POST("/upload", h.File.Upload)
	receipts.GET("", h.File.List)
	receipts.GET("/:id", h.File.Get)
	receipts.GET("/:id/download", h.File.DownloadURL)
	receipts.DELETE("/:id", h.File.Delete)

	return r
}
