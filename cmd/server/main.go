package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"itinerary-planner-service/internal/adapters/cache"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/adapters/resolve"
	"itinerary-planner-service/internal/adapters/travel"
	"itinerary-planner-service/internal/api"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Google APIs) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/pois.json")
	port := config.Get("PORT", "8080")

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed the POI catalog on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	travelCache, closeCache, err := buildTravelCache(sqliteDB)
	if err != nil {
		log.Fatal(err)
	}
	if closeCache != nil {
		defer closeCache()
	}

	googleKey := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	if googleKey == "" {
		log.Println("GOOGLE_API_KEY not set: falling back to geometric travel estimates")
	}

	var weather *travel.OpenWeatherClient
	if key := strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")); key != "" {
		weather = travel.NewOpenWeatherClient(key)
	}

	provider := travel.NewGoogleTravelProvider(googleKey, travelCache, weather)

	repo := repositories.NewSqlitePOIRepository(sqliteDB)
	resolver := resolve.NewChainResolver(
		repo,
		resolve.NewCatalogResolver(repo),
		travel.NewGoogleGeocoder(googleKey),
	)

	planner := services.NewPlanner(resolver, provider)
	router := api.NewRouter(planner, repo, travel.NewIPLocator())

	// Timeouts are tuned for cold-cache itinerary planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildTravelCache picks the travel cache backend from the environment:
// Redis when REDIS_ADDR is set, Postgres when DATABASE_URL is set, and the
// local SQLite database otherwise.
func buildTravelCache(sqliteDB *sql.DB) (ports.TravelCache, func(), error) {
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		log.Printf("Travel cache backend=redis addr=%s", addr)
		return cache.NewRedisTravelCache(client), func() { client.Close() }, nil
	}

	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		pg, err := db.Open(url)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitTravelCacheSchema(pg); err != nil {
			pg.Close()
			return nil, nil, err
		}
		log.Println("Travel cache backend=postgres")
		return cache.NewSQLTravelCache(pg), func() { pg.Close() }, nil
	}

	log.Println("Travel cache backend=sqlite")
	return cache.NewSqliteTravelCache(sqliteDB), nil, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
