package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/localhub-app/localhub-backend/database"
	"github.com/localhub-app/localhub-backend/internal/auth"
	"github.com/localhub-app/localhub-backend/internal/jobs"
	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/routes"
	"github.com/localhub-app/localhub-backend/internal/services"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	environment := os.Getenv("ENVIRONMENT")
	devMode := environment == "" || environment == "development"

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if !devMode {
			log.Fatal("JWT_SECRET must be set outside development")
		}
		log.Println("⚠️  JWT_SECRET not set - using development secret")
		secret = "localhub-dev-secret"
	}

	tokens, err := auth.NewTokenManager(secret, auth.DefaultTokenTTL)
	if err != nil {
		log.Fatal("Failed to initialize token manager:", err)
	}

	// Storage
	var store storage.Store
	var db *gorm.DB
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		db, err = database.Connect()
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		log.Println("🔄 Running database migrations...")
		err = db.AutoMigrate(
			&models.AdminUser{},
			&models.User{},
			&models.Business{},
			&models.Post{},
			&models.District{},
			&models.Hashtag{},
			&models.Category{},
			&models.Menu{},
			&models.Setting{},
			&models.OTPChallenge{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed")

		store = storage.NewDatabaseStore(db)
	}

	// OTP delivery. Twilio is optional: without credentials the service
	// falls back to locally generated codes.
	var provider services.CodeVerifier
	if twilio, err := services.NewTwilioService(); err != nil {
		log.Println("⚠️  Twilio not configured - using local OTP fallback only")
	} else {
		if twilio.VerifyConfigured() {
			log.Println("✅ Twilio Verify service initialized")
		} else {
			log.Println("✅ Twilio SMS initialized (Verify disabled, local challenges only)")
		}
		provider = twilio
	}
	otpService := services.NewOTPService(store, provider, devMode)

	housekeeping := jobs.NewHousekeepingJob(store)
	housekeeping.Start()

	app := fiber.New(fiber.Config{
		AppName: "LocalHub Admin Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	var ping func() error
	if db != nil {
		ping = func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		}
	}

	routes.SetupRoutes(app, store, tokens, otpService, ping)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down...")
		housekeeping.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 LocalHub backend listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
