package router

import (
	"github.com/appessoa/PetGo/config"
	"github.com/appessoa/PetGo/internal/app/controller"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController       *controller.AuthController
	productController    *controller.ProductController
	cartController       *controller.CartController
	orderController      *controller.OrderController
	schedulingController *controller.SchedulingController
	prontuarioController *controller.ProntuarioController
	petController        *controller.PetController
	vetController        *controller.VeterinarianController
	addressController    *controller.AddressController
	adoptionController   *controller.AdoptionController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	schedulingController *controller.SchedulingController,
	prontuarioController *controller.ProntuarioController,
	petController *controller.PetController,
	vetController *controller.VeterinarianController,
	addressController *controller.AddressController,
	adoptionController *controller.AdoptionController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		productController:    productController,
		cartController:       cartController,
		orderController:      orderController,
		schedulingController: schedulingController,
		prontuarioController: prontuarioController,
		petController:        petController,
		vetController:        vetController,
		addressController:    addressController,
		adoptionController:   adoptionController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "PetGo API is running",
		})
	})

	authed := r.authMiddleware.Authenticate()
	adminOnly := r.authMiddleware.RequireRole("admin")
	staffOnly := r.authMiddleware.RequireRole("vet", "admin")

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.GET("/me", authed, r.authController.Me)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListCatalog)
			products.GET("/:id", r.productController.GetProduct)
		}

		cart := v1.Group("/carrinho", authed)
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.ApplyItem)
			cart.DELETE("/items/:id", r.cartController.RemoveItem)
		}

		v1.POST("/checkout", authed, r.orderController.Checkout)

		orders := v1.Group("/orders", authed)
		{
			orders.GET("", r.orderController.ListOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.PATCH("/:id/status", r.orderController.UpdateStatus)
		}

		schedulings := v1.Group("/agendamentos", authed)
		{
			schedulings.POST("", r.schedulingController.Create)
			schedulings.GET("", r.schedulingController.List)
			schedulings.GET("/:id", r.schedulingController.Get)
			schedulings.PUT("/:id", r.schedulingController.Update)
			schedulings.PATCH("/:id/status", r.schedulingController.UpdateStatus)
			schedulings.DELETE("/:id", r.schedulingController.Delete)
		}

		prontuarios := v1.Group("/prontuarios", authed)
		{
			prontuarios.POST("", staffOnly, r.prontuarioController.Create)
			prontuarios.GET("/:id", r.prontuarioController.Get)
			prontuarios.PUT("/:id", staffOnly, r.prontuarioController.Update)
			prontuarios.PATCH("/:id", staffOnly, r.prontuarioController.Update)
		}

		pets := v1.Group("/pets", authed)
		{
			pets.POST("", r.petController.Create)
			pets.GET("", r.petController.List)
			pets.GET("/:id", r.petController.Get)
			pets.PUT("/:id", r.petController.Update)
			pets.DELETE("/:id", r.petController.Delete)
			pets.GET("/:id/prontuarios", r.prontuarioController.ListByPet)
			pets.POST("/:id/vaccines", r.petController.AddVaccine)
			pets.DELETE("/:id/vaccines/:vaccineId", r.petController.RemoveVaccine)
			pets.POST("/:id/consultations", r.petController.AddConsultation)
			pets.DELETE("/:id/consultations/:consultationId", r.petController.RemoveConsultation)
		}

		v1.GET("/veterinarios", authed, r.vetController.List)

		vet := v1.Group("/vet", authed, staffOnly)
		{
			vet.GET("/agendamentos", r.schedulingController.ListAssigned)
		}

		addresses := v1.Group("/addresses", authed)
		{
			addresses.POST("", r.addressController.Create)
			addresses.GET("", r.addressController.List)
			addresses.PUT("/:id", r.addressController.Update)
			addresses.PATCH("/:id/default", r.addressController.SetDefault)
			addresses.DELETE("/:id", r.addressController.Delete)
		}

		adoption := v1.Group("/adoption")
		{
			adoption.GET("/pets", r.adoptionController.ListAvailablePets)
			adoption.POST("/applications", authed, r.adoptionController.Apply)
			adoption.GET("/applications", authed, r.adoptionController.ListMine)
		}

		admin := v1.Group("/admin", authed, adminOnly)
		{
			admin.GET("/products", r.productController.ListAll)
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.PATCH("/products/:id/active", r.productController.SetProductActive)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)

			admin.GET("/orders", r.orderController.ListAdmin)
			admin.GET("/orders/export", r.orderController.ExportAdmin)

			admin.GET("/adoption/applications", r.adoptionController.ListPending)
			admin.POST("/adoption/applications/:id/approve", r.adoptionController.Approve)
			admin.POST("/adoption/applications/:id/reject", r.adoptionController.Reject)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
