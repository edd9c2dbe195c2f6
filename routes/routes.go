package routes

import (
	"log"

	"intershop/cache"
	"intershop/config"
	"intershop/controllers"
	"intershop/libs"
	"intershop/middleware"
	"intershop/models"
	"intershop/repositories"
	"intershop/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	store := cache.NewStore(config.RedisClient, config.AppConfig.CacheTTL)
	paymentClient := libs.NewPaymentClient(config.AppConfig.PaymentURL, config.AppConfig.PaymentTimeout)

	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	orderRepo := repositories.NewOrderRepository()
	userRepo := repositories.NewUserRepository()

	var mailer services.Mailer
	if emailService, err := models.NewEmailService(); err == nil {
		mailer = emailService
	} else {
		log.Println("Order confirmation emails disabled:", err)
	}

	authService := services.NewAuthService(userRepo)
	productService := services.NewProductService(productRepo, store)
	cartService := services.NewCartService(cartRepo, productRepo, paymentClient, store)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, paymentClient, store, mailer)

	authCtrl := controllers.NewAuthController(authService)
	productCtrl := controllers.NewProductController(productService)
	cartCtrl := controllers.NewCartController(cartService)
	orderCtrl := controllers.NewOrderController(orderService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.GET("/products", productCtrl.GetProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items/:id", cartCtrl.AddItem)
		auth.POST("/cart/items/:id/decrement", cartCtrl.DecrementItem)
		auth.DELETE("/cart/items/:id", cartCtrl.RemoveItem)

		auth.POST("/orders/checkout", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", productCtrl.CreateProduct)
	}

	router.Static("/uploads", "./uploads")
}
