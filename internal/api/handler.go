package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/service"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	cartCookieName   = "cart_session"
	cartCookieMaxAge = 7 * 24 * 60 * 60
)

// Handler contains HTTP handlers
type Handler struct {
	catalog       *service.CatalogService
	carts         *service.CartService
	orders        *service.OrderService
	team          *service.TeamService
	contact       *service.ContactService
	gate          *auth.Gate
	secureCookies bool
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	carts *service.CartService,
	orders *service.OrderService,
	team *service.TeamService,
	contact *service.ContactService,
	gate *auth.Gate,
	env string,
) *Handler {
	return &Handler{
		catalog:       catalog,
		carts:         carts,
		orders:        orders,
		team:          team,
		contact:       contact,
		gate:          gate,
		secureCookies: env == "production",
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)

		v1.GET("/team/categories", h.listTeamCategories)
		v1.GET("/team/categories/:id", h.getTeamCategory)
		v1.GET("/team/categories/:id/members", h.listMembersByCategory)
		v1.GET("/team/members", h.listTeamMembers)
		v1.GET("/team/members/:id", h.getTeamMember)
		v1.GET("/team/uncategorized", h.listUncategorizedMembers)

		v1.POST("/contact", h.createContactMessage)

		shopper := v1.Group("/")
		shopper.Use(h.cartSessionMiddleware())
		{
			shopper.GET("/cart", h.getCart)
			shopper.POST("/cart/items", h.addCartItem)
			shopper.PATCH("/cart/items/:productId", h.updateCartItem)
			shopper.DELETE("/cart/items/:productId", h.removeCartItem)
			shopper.DELETE("/cart", h.clearCart)
			shopper.POST("/orders", h.checkout)
		}

		v1.POST("/custom-requests", h.createCustomRequest)

		v1.POST("/admin/login", h.adminLogin)
		v1.GET("/admin/session", h.adminSessionCheck)

		admin := v1.Group("/admin")
		admin.Use(h.requireAdmin())
		{
			admin.GET("/orders", h.listOrders)
			admin.GET("/orders/:id", h.getOrder)
			admin.PATCH("/orders/:id/status", h.updateOrderStatus)

			admin.POST("/products", h.createProduct)
			admin.PATCH("/products/:id/stock", h.updateProductStock)
			admin.DELETE("/products/:id", h.deleteProduct)

			admin.POST("/team/categories", h.createTeamCategory)
			admin.DELETE("/team/categories/:id", h.deleteTeamCategory)
			admin.POST("/team/members", h.createTeamMember)
			admin.DELETE("/team/members/:id", h.deleteTeamMember)
			admin.PUT("/team/category-order", h.reorderTeamCategories)
			admin.PUT("/team/member-order", h.reorderTeamMembers)

			admin.GET("/messages", h.listContactMessages)
		}
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// cartSessionMiddleware ensures every shopper request carries a cart
// session cookie
func (h *Handler) cartSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cartCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cartCookieName, sessionID, cartCookieMaxAge, "/", "", h.secureCookies, true)
		}
		c.Set("cartSession", sessionID)
		c.Next()
	}
}

func cartSession(c *gin.Context) string {
	return c.GetString("cartSession")
}

// requireAdmin re-derives the admin session from the cookie alone on
// every privileged request
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(auth.CookieName)
		sess, err := h.gate.Check(c.Request.Context(), token)
		if err != nil {
			util.UnauthorizedTotal.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set("adminSession", sess)
		c.Next()
	}
}

func adminSession(c *gin.Context) auth.Session {
	sess, _ := c.MustGet("adminSession").(auth.Session)
	return sess
}

// writeError maps service errors to HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, service.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
