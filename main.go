package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"team-manager-system/handlers"
	"team-manager-system/models"
	"team-manager-system/services"
	"team-manager-system/utils"
	"team-manager-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // avatars only, 10MB is plenty
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Player{},
		&models.Event{},
		&models.Participation{},
		&models.SeasonStats{},
		&models.AdminReport{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	authService := services.NewAuthService(db, secret)
	accountService := services.NewAccountService(db)
	playerService := services.NewPlayerService(db)
	eventService := services.NewEventService(db)
	participationService := services.NewParticipationService(db)
	statsService := services.NewStatsService(db)
	reportService := services.NewReportService(db)

	// Bootstrap admin (elevated creation path)
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminPassword == "" {
			log.Fatal("ADMIN_PASSWORD required when ADMIN_EMAIL is set")
		}
		if err := accountService.EnsureAdmin(adminEmail, adminPassword); err != nil {
			log.Fatal("failed to ensure bootstrap admin:", err)
		}
	}

	if os.Getenv("SEED_PLAYERS") == "1" {
		if err := utils.SeedPlayers(db, 20); err != nil {
			log.Fatal("failed to seed players:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	participationService.StartSeedScheduler()

	notifyWatcher := workers.NewNotifyWatcher(db)
	go notifyWatcher.Poll(ctx, 5*time.Minute)

	handlers.SetupAuthRoutes(app, secret, authService, accountService)
	handlers.SetupAdminRoutes(app, secret, accountService, playerService, statsService, participationService, reportService)
	handlers.SetupPlayerRoutes(app, secret, playerService, participationService, statsService)
	handlers.SetupEventRoutes(app, secret, eventService)

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)
	log.Println("Participation seed scheduler running (every 1m)")
	log.Println("Notify watcher running (every 5m)")
	log.Printf("CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
