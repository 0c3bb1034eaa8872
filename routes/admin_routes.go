package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/controllers"
	"github.com/prabin-sth/ThreadKart/middleware"
)

// RegisterAdminRoutes mounts the admin console routes.
func RegisterAdminRoutes(v1 *gin.RouterGroup) {
	admin := v1.Group("/admin")

	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		// Catalog
		protected.GET("/products", controllers.AdminListProducts)
		protected.POST("/products", controllers.AdminCreateProduct)
		protected.PUT("/products/:id", controllers.AdminUpdateProduct)
		protected.PATCH("/products/:id/stock", controllers.AdminRestockProduct)
		protected.GET("/products/:id/waitlist", controllers.AdminProductWaitlist)
		protected.DELETE("/products/:id", controllers.AdminDeactivateProduct)

		// Coupons
		protected.GET("/coupons", controllers.AdminListCoupons)
		protected.POST("/coupons", controllers.AdminCreateCoupon)
		protected.PUT("/coupons/:id", controllers.AdminUpdateCoupon)
		protected.DELETE("/coupons/:id", controllers.AdminDeleteCoupon)

		// Orders
		protected.GET("/orders", controllers.AdminListOrders)
		protected.GET("/orders/:id", controllers.AdminGetOrder)
		protected.PATCH("/orders/:id/status", controllers.AdminUpdateOrderStatus)
		protected.POST("/orders/:id/refund-wallet", controllers.AdminIssueWalletRefund)
		protected.POST("/orders/:id/refund-reject", controllers.AdminRejectRefund)

		// Wallet
		protected.GET("/wallet", controllers.AdminGetStoreWallet)
		protected.POST("/wallet/adjust", controllers.AdminAdjustStoreWallet)

		// Customers
		protected.GET("/users", controllers.AdminListUsers)
		protected.PATCH("/users/:id/block", controllers.AdminSetUserBlocked)

		// Dashboard and reports
		protected.GET("/dashboard/stats", controllers.AdminDashboardStats)
		protected.GET("/dashboard/recent-orders", controllers.AdminRecentOrders)
		protected.GET("/reports/sales/excel", controllers.AdminSalesReportExcel)
		protected.GET("/reports/sales/pdf", controllers.AdminSalesReportPDF)

		// Settings and homepage
		protected.GET("/settings", controllers.AdminGetSettings)
		protected.PUT("/settings", controllers.AdminUpdateSettings)
		protected.GET("/homepage/sections", controllers.AdminListHomepageSections)
		protected.POST("/homepage/sections", controllers.AdminCreateHomepageSection)
		protected.PUT("/homepage/sections/:id", controllers.AdminUpdateHomepageSection)
		protected.DELETE("/homepage/sections/:id", controllers.AdminDeleteHomepageSection)
		protected.POST("/homepage/sections/reorder", controllers.AdminReorderHomepageSections)
	}
}
