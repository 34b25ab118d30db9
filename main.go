package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"parfum/internal/checkout"
	"parfum/internal/handlers"
	"parfum/internal/middleware"
	"parfum/internal/models"
	"parfum/internal/repositories"
	"parfum/internal/services"
	"parfum/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_USER", "")
	viper.SetDefault("EMAIL_PASS", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	frontendURL := viper.GetString("FRONTEND_URL")

	// --- Repositories ---
	// With a DSN the shop runs on Postgres; without one it falls back to the
	// in-memory repositories with seed data, which is enough for local work.
	var (
		perfumeRepo    repositories.PerfumeRepository
		userRepo       repositories.UserRepository
		orderRepo      repositories.OrderRepository
		promoRepo      repositories.PromoRepository
		newsletterRepo repositories.NewsletterRepository
	)
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(
			&models.Perfume{}, &models.User{}, &models.Order{},
			&models.PromoCode{}, &models.NewsletterSubscriber{},
		); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		perfumeRepo = repositories.NewGORMPerfumeRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
		orderRepo = repositories.NewGORMOrderRepository(db)
		promoRepo = repositories.NewGORMPromoRepository(db)
		newsletterRepo = repositories.NewGORMNewsletterRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory repositories")
		perfumeRepo = repositories.NewMockPerfumeRepository()
		userRepo = repositories.NewMockUserRepository()
		orderRepo = repositories.NewMockOrderRepository()
		promoRepo = repositories.NewMockPromoRepository()
		newsletterRepo = repositories.NewMockNewsletterRepository()
		seedPerfumes(perfumeRepo)
		seedPromoCodes(promoRepo)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer client.Close()
		mqClient = client
	} else {
		log.Println("RABBITMQ_URL not set, order events will not be published")
	}

	// --- Mail (optional) ---
	var mailer services.Mailer
	emailUser := viper.GetString("EMAIL_USER")
	if emailUser != "" {
		mailer = services.NewSMTPMailer(
			viper.GetString("SMTP_HOST"),
			viper.GetInt("SMTP_PORT"),
			emailUser,
			viper.GetString("EMAIL_PASS"),
		)
	} else {
		log.Println("EMAIL_USER not set, mail delivery disabled")
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	newsletterService := services.NewNewsletterService(newsletterRepo, mailer, frontendURL)
	perfumeService := services.NewPerfumeService(perfumeRepo, newsletterService)
	orderService := services.NewOrderService(orderRepo, mqClient)
	promoService := services.NewPromoService(promoRepo)
	contactService := services.NewContactService(mailer, emailUser)
	chatbotService := services.NewChatbotService()
	gateway := services.NewStripeGateway(viper.GetString("STRIPE_SECRET_KEY"), frontendURL)

	// Per-user durable checkout state
	storageProvider := checkout.NewStorageProvider()

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	perfumeHandler := handlers.NewPerfumeHandler(perfumeService)
	orderHandler := handlers.NewOrderHandler(orderService)
	promoHandler := handlers.NewPromoHandler(promoService)
	paymentHandler := handlers.NewPaymentHandler(gateway)
	cartHandler := handlers.NewCartHandler(storageProvider)
	checkoutHandler := handlers.NewCheckoutHandler(storageProvider, gateway, promoService, orderService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	contactHandler := handlers.NewContactHandler(contactService)
	chatbotHandler := handlers.NewChatbotHandler(chatbotService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins: frontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// --- API Routes ---
	api := app.Group("/api")

	// Public routes
	authHandler.RegisterRoutes(api)
	perfumeHandler.RegisterPublicRoutes(api)
	promoHandler.RegisterRoutes(api)
	newsletterHandler.RegisterRoutes(api)
	contactHandler.RegisterRoutes(api)
	chatbotHandler.RegisterRoutes(api)

	// Protected routes (require JWT authentication)
	protected := api.Group("", middleware.AuthRequired(authService))
	perfumeHandler.RegisterAdminRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	paymentHandler.RegisterRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	checkoutHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer ---
	// Fulfilment would hang off these events; for now they are logged.
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for order events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received Order Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil // Return nil to acknowledge
		}
		if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedPerfumes populates the in-memory perfume repository with catalogue data.
func seedPerfumes(repo repositories.PerfumeRepository) {
	perfumes := []models.Perfume{
		{Name: "Midnight Oud", Brand: "Maison Noire", Description: "Smoky oud with amber and rose", Price: 129.99, Category: "woody", Concentration: "Eau de Parfum", CountInStock: 15},
		{Name: "Citrus Bloom", Brand: "Jardin d'Été", Description: "Bergamot, neroli and white musk", Price: 74.50, Category: "fresh", Concentration: "Eau de Toilette", CountInStock: 30},
		{Name: "Velvet Iris", Brand: "Maison Noire", Description: "Powdery iris over sandalwood", Price: 98.00, Category: "floral", Concentration: "Eau de Parfum", CountInStock: 22},
	}

	for i := range perfumes {
		if err := repo.Create(&perfumes[i]); err != nil {
			log.Printf("Error seeding perfume %s: %v", perfumes[i].Name, err)
		} else {
			log.Printf("Seeded perfume: %s (ID: %s)", perfumes[i].Name, perfumes[i].ID)
		}
	}
}

// seedPromoCodes populates the in-memory promo repository.
func seedPromoCodes(repo repositories.PromoRepository) {
	expiry := time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)
	promos := []models.PromoCode{
		{Code: "WELCOME10", DiscountType: models.DiscountTypePercentage, DiscountValue: 10, MinOrderAmount: 50, MaxDiscount: 20, UsageLimit: 100, IsActive: true, ExpiryDate: expiry},
		{Code: "SAVE20", DiscountType: models.DiscountTypeFixed, DiscountValue: 20, MinOrderAmount: 100, UsageLimit: 50, IsActive: true, ExpiryDate: expiry},
		{Code: "PERFUME25", DiscountType: models.DiscountTypePercentage, DiscountValue: 25, MinOrderAmount: 150, MaxDiscount: 50, UsageLimit: 30, IsActive: true, ExpiryDate: expiry},
		{Code: "FIRST15", DiscountType: models.DiscountTypePercentage, DiscountValue: 15, MinOrderAmount: 75, MaxDiscount: 30, UsageLimit: 200, IsActive: true, ExpiryDate: expiry},
	}

	for i := range promos {
		if err := repo.Create(&promos[i]); err != nil {
			log.Printf("Error seeding promo code %s: %v", promos[i].Code, err)
		}
	}
}
