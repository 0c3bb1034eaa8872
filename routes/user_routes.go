package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/controllers"
	"github.com/prabin-sth/ThreadKart/middleware"
)

// RegisterUserRoutes mounts the authenticated customer routes.
func RegisterUserRoutes(v1 *gin.RouterGroup) {
	user := v1.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.POST("/orders", controllers.CreateOrder)
		user.GET("/orders", controllers.GetUserOrders)
		user.GET("/orders/:id", controllers.GetOrderDetails)
		user.GET("/orders/:id/invoice", controllers.DownloadInvoice)
		user.POST("/orders/:id/refund-request", controllers.RequestRefund)
		user.GET("/wallet", controllers.GetUserWallet)
	}
}
