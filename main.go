package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"vendaboard/config"
	"vendaboard/database"
	"vendaboard/forecast"
	"vendaboard/handlers"
	"vendaboard/holiday"
	"vendaboard/routes"
	"vendaboard/store"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}

	// Initialize database
	database.Connect(databaseURL)
	defer database.Close()

	// Holiday provider: one interface, one implementation per deployment.
	provider, scheduler := buildHolidayProvider()
	if scheduler != nil {
		scheduler.Start()
		defer scheduler.Stop()
	}

	pg := store.NewPostgresStore(database.GetDB(), config.AppConfig.HistoryPageSize)
	h := handlers.NewHandler(pg, pg, pg, pg, provider, handlers.Options{
		PageCeiling:            config.AppConfig.PageCeiling,
		TrendThreshold:         config.AppConfig.TrendThreshold,
		IncludeZeroDays:        config.AppConfig.IncludeZeroDays,
		RevenueMissingMapping:  forecast.MissingMappingPolicy(config.AppConfig.RevenueMissingMapping),
		PurchaseMissingMapping: forecast.MissingMappingPolicy(config.AppConfig.PurchaseMissingMapping),
	})

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app, h)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}

// buildHolidayProvider picks the configured holiday source. The API source
// is cached and warmed daily so request paths stay off the network.
func buildHolidayProvider() (holiday.Provider, *cron.Cron) {
	switch config.AppConfig.HolidaySource {
	case "api":
		cached := holiday.Cached(holiday.NewAPIProvider())
		warm := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			year := time.Now().Year()
			cached.Warm(ctx, year, year+1)
		}
		go warm()

		scheduler := cron.New()
		if _, err := scheduler.AddFunc("0 4 * * *", warm); err != nil {
			log.Printf("⚠️  Failed to schedule holiday cache warm: %v", err)
		}
		return cached, scheduler
	default:
		if path := config.AppConfig.HolidayFile; path != "" {
			p, err := holiday.LoadYAMLFile(path)
			if err != nil {
				log.Printf("⚠️  Failed to load holiday file %s, using built-in table: %v", path, err)
				return holiday.NewStaticProvider(), nil
			}
			return p, nil
		}
		return holiday.NewStaticProvider(), nil
	}
}
