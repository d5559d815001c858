package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/NoxusLabb/CardapioDigital/docs" // Import generated docs
	"github.com/NoxusLabb/CardapioDigital/internal/auth"
	"github.com/NoxusLabb/CardapioDigital/internal/config"
	"github.com/NoxusLabb/CardapioDigital/internal/controllers"
	"github.com/NoxusLabb/CardapioDigital/internal/database"
	"github.com/NoxusLabb/CardapioDigital/internal/middleware"
	"github.com/NoxusLabb/CardapioDigital/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                 *gorm.DB
	catalogService     services.CatalogService
	orderService       services.OrderService
	userService        services.UserService
	clientService      services.ClientService
	oauthService       *auth.OAuthService
	categoryController *controllers.CategoryController
	productController  *controllers.ProductController
	orderController    *controllers.OrderController
	authController     *controllers.AuthController
	clientController   *controllers.ClientController
	configuration      *config.Config
)

// @title Cardápio Digital API
// @version 1.0
// @description Digital menu backend: storefront catalog, order placement and tracking, and the admin panel API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	catalogService = services.NewCatalogService(db)
	orderService = services.NewOrderService(db)
	userService = services.NewUserService(db)
	clientService = services.NewClientService(db)
	oauthService = auth.NewOAuthService(db, configuration.JWTSecret)

	categoryController = controllers.NewCategoryController(catalogService)
	productController = controllers.NewProductController(catalogService)
	orderController = controllers.NewOrderController(orderService)
	authController = controllers.NewAuthController(userService, configuration.JWTSecret)
	clientController = controllers.NewClientController(clientService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection, applies the schema and
// seeds the demo menu when enabled
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	checkPanicErr(database.Migrate(db))

	if conf.SeedDatabase {
		checkPanicErr(database.Seed(db))
	}
	return db
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	api := router.Group("/api")
	{
		// Public storefront routes
		api.GET("/categories", categoryController.GetCategories)
		api.GET("/products", productController.GetProducts)
		api.GET("/products/category/:categoryId", productController.GetProductsByCategory)
		api.GET("/products/search/:term", productController.SearchProducts)
		api.GET("/products/:id", productController.GetProductByID)

		// Order placement and tracking (public, no login needed)
		api.POST("/orders", orderController.CreateOrder)
		api.GET("/orders/track", orderController.TrackOrder)

		// Admin dashboard authentication
		api.POST("/auth/login", authController.Login)
		api.GET("/auth/me", middleware.JWTAuth([]byte(configuration.JWTSecret)), authController.Me)

		// Admin routes (requires JWT authentication and the admin role)
		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth([]byte(configuration.JWTSecret)))
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/products", productController.CreateProduct)
			admin.PUT("/products/:id", productController.UpdateProduct)
			admin.DELETE("/products/:id", productController.DeleteProduct)

			admin.POST("/categories", categoryController.CreateCategory)
			admin.PUT("/categories/:id", categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", categoryController.DeleteCategory)

			admin.GET("/orders", orderController.ListOrders)
			admin.PATCH("/orders/:id/status", orderController.UpdateOrderStatus)

			admin.POST("/clients", clientController.CreateClient)
			admin.GET("/clients", clientController.ListClients)
			admin.DELETE("/clients/:id", clientController.DeleteClient)
		}
	}

	// OAuth2 endpoints for machine clients
	oauthGroup := router.Group("/oauth")
	{
		oauthGroup.POST("/token", oauthService.HandleToken)
		oauthGroup.GET("/authorize", oauthService.HandleAuthorize)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "cardapio-digital",
	})
}
