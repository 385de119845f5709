package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/rgbilling/gst-billing/internal/config"
	"github.com/rgbilling/gst-billing/internal/presentation/http/dto/response"
	"github.com/rgbilling/gst-billing/internal/presentation/http/handler"
	"github.com/rgbilling/gst-billing/internal/presentation/http/middleware"
	"github.com/rgbilling/gst-billing/pkg/apperror"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Invoice *handler.InvoiceHandler
	Profile *handler.ProfileHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		response.Error(c, apperror.ErrInternalServer)
		c.Abort()
	}))
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	if cfg.Upload.MaxSize > 0 {
		// Multipart parts beyond this spill to temp files
		router.MaxMultipartMemory = cfg.Upload.MaxSize
	}

	health := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	}
	router.GET("/health", health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", health)
		registerInvoiceRoutes(v1, h)
		registerProfileRoutes(v1, h)
	}

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	return router
}

func registerInvoiceRoutes(rg *gin.RouterGroup, h *Handlers) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("/compute", h.Invoice.Compute)
		invoices.POST("/preview.pdf", h.Invoice.Preview)
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.GET("/:id/pdf", h.Invoice.PDF)
		invoices.POST("/:id/export", h.Invoice.Export)
	}
}

func registerProfileRoutes(rg *gin.RouterGroup, h *Handlers) {
	profile := rg.Group("/profile")
	{
		profile.GET("", h.Profile.Get)
		profile.PUT("", h.Profile.Update)
		profile.PUT("/signature", h.Profile.SetSignature)
		profile.DELETE("/signature", h.Profile.ClearSignature)
	}
}
