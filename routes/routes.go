package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/controllers"
	"github.com/prabin-sth/ThreadKart/utils"
)

// SetupRouter wires the middleware chain and every route group.
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		// Storefront
		v1.GET("/homepage", controllers.GetHomepage)
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:id", controllers.GetProduct)
		v1.POST("/products/:id/waitlist", controllers.JoinWaitlist)
		v1.GET("/settings", controllers.GetStoreSettings)
		v1.POST("/shipping/quote", controllers.GetShippingQuote)
		v1.POST("/coupons/validate", controllers.ValidateCoupon)

		// Accounts
		v1.POST("/register", controllers.RegisterUser)
		v1.POST("/login", controllers.LoginUser)

		// Payment callbacks. The webhook is signature-authenticated, the
		// verify endpoints are safe to expose because the provider is the
		// authority, not the caller.
		v1.POST("/payments/stripe/webhook", controllers.StripeWebhook)
		v1.POST("/payments/esewa/verify", controllers.VerifyEsewaPayment)
		v1.POST("/payments/khalti/initiate", controllers.InitiateKhaltiPayment)
		v1.POST("/payments/khalti/verify", controllers.VerifyKhaltiPayment)
	}

	RegisterUserRoutes(v1)
	RegisterAdminRoutes(v1)

	return router
}
