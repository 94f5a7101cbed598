package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "miklean/docs"
	"miklean/internal/handler"
	"miklean/internal/middleware"
	"miklean/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health   *handler.HealthHandler
	Profile  *handler.ProfileHandler
	Client   *handler.ClientHandler
	Estimate *handler.EstimateHandler
	Visit    *handler.VisitHandler
	Invoice  *handler.InvoiceHandler
	Public   *handler.PublicHandler
	Stats    *handler.StatsHandler
	Task     *handler.TaskHandler
}

// Options holds router settings taken from configuration.
type Options struct {
	AllowedOrigins []string
	CronSecret     string
	Log            *logrus.Logger
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Log))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Token-guarded pages shared with clients
	public := v1.Group("/public")
	public.GET("/estimates/:id/:token", h.Public.GetEstimate)
	public.POST("/estimates/:id/:token/accept", h.Public.AcceptEstimate)
	public.GET("/invoices/:id/:token", h.Public.GetInvoice)

	// Scheduled jobs triggered by an external scheduler
	tasks := v1.Group("/tasks")
	tasks.Use(middleware.CronSecret(opts.CronSecret))
	tasks.POST("/reminders", h.Task.SendReminders)

	// Protected routes - require a valid identity provider token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.BusinessGuard())

	protected.GET("/stats", h.Stats.GetStats)

	profile := protected.Group("/profile")
	profile.GET("", h.Profile.Get)
	profile.PUT("", h.Profile.Update)
	profile.PUT("/payment-methods", h.Profile.SetPaymentMethods)
	profile.POST("/logo", h.Profile.UploadLogo)

	clients := protected.Group("/clients")
	clients.GET("", h.Client.List)
	clients.POST("", h.Client.Create)
	clients.GET("/:id", h.Client.Get)
	clients.PUT("/:id", h.Client.Update)
	clients.POST("/:id/convert", h.Client.Convert)
	clients.POST("/:id/deactivate", h.Client.Deactivate)
	clients.GET("/:id/estimates", h.Estimate.ListByClient)
	clients.POST("/:id/estimates", h.Estimate.Create)
	clients.POST("/:id/visits", h.Visit.Schedule)
	clients.GET("/:id/uninvoiced-visits", h.Invoice.Uninvoiced)
	clients.GET("/:id/invoices", h.Invoice.ListByClient)
	clients.POST("/:id/invoices", h.Invoice.Create)

	estimates := protected.Group("/estimates")
	estimates.GET("/:id", h.Estimate.Get)
	estimates.PUT("/:id", h.Estimate.Update)
	estimates.POST("/:id/send", h.Estimate.Send)
	estimates.POST("/:id/accept", h.Estimate.Accept)
	estimates.GET("/:id/pdf", h.Estimate.PDF)

	visits := protected.Group("/visits")
	visits.GET("/today", h.Visit.Today)
	visits.GET("/calendar", h.Visit.Calendar)
	visits.GET("/export", h.Visit.ExportCSV)
	visits.GET("/:id", h.Visit.Get)
	visits.POST("/:id/complete", h.Visit.Complete)
	visits.POST("/:id/cancel", h.Visit.Cancel)
	visits.PUT("/:id/reschedule", h.Visit.Reschedule)

	invoices := protected.Group("/invoices")
	invoices.GET("", h.Invoice.List)
	invoices.GET("/export", h.Invoice.ExportWorkbook)
	invoices.GET("/:id", h.Invoice.Get)
	invoices.POST("/:id/send", h.Invoice.Send)
	invoices.POST("/:id/mark-paid", h.Invoice.MarkPaid)
	invoices.GET("/:id/pdf", h.Invoice.PDF)

	return r
}
