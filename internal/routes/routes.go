package routes

import (
	"os"
	"strings"

	"swadbazaar-backend/internal/handlers/admin"
	"swadbazaar-backend/internal/handlers/payment"
	"swadbazaar-backend/internal/handlers/product"
	"swadbazaar-backend/internal/handlers/store"
	"swadbazaar-backend/internal/handlers/user"
	"swadbazaar-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.OTPRateLimit(), user.Register)
		auth.POST("/verify-otp", user.VerifyOTP)
		auth.POST("/resend-otp", middleware.OTPRateLimit(), user.ResendOTP)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/whatsapp/send-otp", middleware.OTPRateLimit(), user.SendWhatsAppLoginOTP)
		auth.POST("/whatsapp/verify-otp", user.VerifyWhatsAppLoginOTP)
		auth.GET("/:provider", user.BeginAuth)
		auth.GET("/:provider/callback", user.CallbackAuth)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
		auth.PUT("/me", middleware.AuthRequired(), user.UpdateProfile)
	}

	// Catalog
	api.GET("/products", product.GetProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:slug", product.GetProductBySlug)

	// Cart (guest ids allowed, no auth gate)
	cart := api.Group("/cart")
	{
		cart.POST("/add", user.AddToCart)
		cart.GET("/ws/:userId", user.CartWebSocket)
		cart.GET("/:userId", user.GetCart)
		cart.DELETE("/remove/:userId/:productId", user.RemoveFromCart)
		cart.PUT("/update", user.UpdateQuantity)
		cart.POST("/clear/:userId", user.ClearCart)
	}

	// Coupons
	api.GET("/coupons/validate", payment.ValidateCoupon)

	// Orders
	orders := api.Group("/orders")
	{
		orders.POST("/create", user.CreateOrder)
		orders.GET("/detail/:id", middleware.AuthRequired(), user.GetOrderByID)
		orders.GET("/:userId", middleware.AuthRequired(), user.GetMyOrders)
		orders.PUT("/:id", middleware.AuthRequired(), middleware.RequireAdmin, admin.UpdateOrderStatus)
	}

	// Payments
	pay := api.Group("/payment")
	{
		// Razorpay is the default gateway, reachable on the bare paths too
		pay.POST("/create-order", payment.CreateRazorpayOrder)
		pay.POST("/verify-payment", payment.VerifyRazorpayPayment)
		pay.POST("/razorpay/create-order", payment.CreateRazorpayOrder)
		pay.POST("/razorpay/verify", payment.VerifyRazorpayPayment)
		pay.POST("/phonepe/initiate", payment.InitiatePhonePePayment)
		pay.GET("/phonepe/status/:mtid", payment.PhonePeStatus)
		pay.POST("/stripe/create-intent", middleware.AuthRequired(), payment.CreatePaymentIntent)
		pay.POST("/stripe/webhook", payment.StripeWebhook)
	}

	// Shipping
	api.GET("/shipping/options", payment.GetShippingOptions)
	api.POST("/shipping/create-order/:orderId",
		middleware.AuthRequired(), middleware.RequireAdmin, payment.CreateShippingOrder)

	// Stores
	api.GET("/stores", store.GetStores)

	// Wishlist
	wishlist := api.Group("/wishlist", middleware.AuthRequired())
	{
		wishlist.GET("", user.GetWishlist)
		wishlist.POST("/add", user.AddToWishlist)
		wishlist.DELETE("/remove/:productId", user.RemoveFromWishlist)
	}

	// Admin
	adm := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adm.POST("/products", product.CreateProduct)
		adm.PUT("/products/:id", product.UpdateProduct)
		adm.DELETE("/products/:id", product.DeleteProduct)
		adm.POST("/products/:id/images", product.UploadImage)
		adm.PUT("/products/:id/stock", product.UpdateStock)

		adm.GET("/orders", admin.GetAllOrders)
		adm.GET("/stats", admin.GetDashboardStats)

		adm.GET("/coupons", payment.GetCoupons)
		adm.POST("/coupons", payment.CreateCoupon)
		adm.PUT("/coupons/:id", payment.UpdateCoupon)
		adm.DELETE("/coupons/:id", payment.DeleteCoupon)

		adm.POST("/stores", store.CreateStore)
		adm.DELETE("/stores/:id", store.DeleteStore)
	}
}
