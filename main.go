package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"racquet-stats-system/handlers"
	"racquet-stats-system/middleware"
	"racquet-stats-system/services"
	"racquet-stats-system/store"
	"racquet-stats-system/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  Avatar storage disabled: %v", err)
	}

	verifier, err := services.NewFirebaseVerifier(os.Getenv("FIREBASE_PROJECT_ID"))
	if err != nil {
		log.Fatal("failed to initialize Firebase verifier:", err)
	}

	app := fiber.New()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	originList := strings.Split(allowedOrigins, ",")
	for i, origin := range originList {
		originList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(originList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.IdentityHeader,
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(middleware.FirebaseAuthMiddleware(verifier, st))

	userService := services.NewUserService(st)
	playerService := services.NewPlayerService(st)
	matchService := services.NewMatchService(st)

	handlers.SetupUserRoutes(app, userService)
	handlers.SetupPlayerRoutes(app, playerService)
	handlers.SetupMatchRoutes(app, matchService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5200"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := st.Close(); err != nil {
		log.Printf("closing database: %v", err)
	}
}
