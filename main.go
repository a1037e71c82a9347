package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/color-palette/api/api"
	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/migrations"
	"github.com/color-palette/api/naming"
	"github.com/color-palette/api/palette"
	"github.com/color-palette/api/scheduler"
	"github.com/color-palette/api/studio"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := api.Config{
		HTTPPort:          getEnv("HTTP_PORT", ":8080"),
		DatabaseType:      getEnv("DB_TYPE", "postgres"),
		DatabaseUser:      getEnv("DB_USER", "postgres"),
		DatabasePassword:  getEnv("DB_PASSWORD", ""),
		DatabaseName:      getEnv("DB_NAME", "palettes"),
		SSLMode:           getEnv("SSL_MODE", "disable"),
		SQLitePath:        getEnv("SQLITE_PATH", "palettes.db"),
		JwtSecret:         getEnv("JWT_SECRET", "your-secret-key-change-this"),
		JwtAccessDuration: getEnvInt("JWT_ACCESS_DURATION", 900), // 15 minutes
		JwtDomain:         getEnv("JWT_DOMAIN", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AllowedOrigins:    getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		DevMode:           getEnvBool("DEV_MODE", true),
		NamingAPIURL:      getEnv("NAMING_API_URL", naming.DefaultChatURL),
		NamingAPIKey:      getEnv("NAMING_API_KEY", ""),
		NamingModel:       getEnv("NAMING_MODEL", naming.DefaultModel),
		NamingStrategy:    getEnv("NAMING_STRATEGY", "plain"),
		NamingTimeoutMs:   getEnvInt("NAMING_TIMEOUT_MS", 5000),
		SchedulerEnabled:  getEnvBool("SCHEDULER_ENABLED", true),
	}

	dialect, err := datastore.ParseDialect(config.DatabaseType)
	if err != nil {
		log.Fatalf("Invalid DB_TYPE: %v", err)
	}

	connStr := datastore.BuildSQLiteConnStr(config.SQLitePath)
	if dialect == datastore.Postgres {
		connStr = datastore.BuildDBConnStr(
			config.DatabasePassword,
			config.DatabaseUser,
			config.DatabaseName,
			config.SSLMode,
		)
	}

	dbConn, dbErr := datastore.NewDB(dialect, connStr)
	if dbErr != nil {
		log.Fatalf("Failed to connect to database: %v", dbErr)
	}
	defer dbConn.Close()

	fmt.Println("Running database migrations...")
	if err := migrations.RunMigrations(dbConn, dialect); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	kvRepo, kvRepoErr := datastore.NewKeyValueDatabase(dbConn, dialect)
	if kvRepoErr != nil {
		log.Fatalf("Failed to create key-value repository: %v", kvRepoErr)
	}
	favoritesRepo := datastore.NewFavoritesStore(kvRepo)
	dailyPaletteRepo := datastore.NewDailyPaletteStore(kvRepo)

	strategy, err := naming.StrategyByName(config.NamingStrategy)
	if err != nil {
		log.Fatalf("Invalid NAMING_STRATEGY: %v", err)
	}

	// without a key every name comes from the local fallback
	var completer naming.Completer
	if config.NamingAPIKey != "" {
		completer = naming.NewChatService(config.NamingAPIURL, config.NamingAPIKey, config.NamingModel)
	} else {
		log.Println("NAMING_API_KEY not set, palette names will be generated locally")
	}
	namer := naming.NewNamer(completer, strategy, time.Duration(config.NamingTimeoutMs)*time.Millisecond, nil)

	engine := palette.NewEngine()

	store := studio.NewStore(engine)
	favorites, err := favoritesRepo.Load()
	if err != nil {
		log.Printf("Failed to load favorites, starting empty: %v", err)
	} else if _, err := store.Dispatch(studio.Action{Type: studio.ActionLoadFavorites, Favorites: favorites}); err != nil {
		log.Printf("Failed to restore favorites: %v", err)
	}
	studio.PersistFavorites(store, favoritesRepo)
	studio.AutoDismissToasts(store, studio.ToastDuration)

	paletteScheduler := scheduler.NewScheduler(dailyPaletteRepo, engine, namer)

	app := &api.Application{
		Config:           config,
		Engine:           engine,
		Namer:            namer,
		Studio:           store,
		FavoritesRepo:    favoritesRepo,
		DailyPaletteRepo: dailyPaletteRepo,
		DailyGenerator:   paletteScheduler,
	}

	var cleanup []func()
	if config.SchedulerEnabled {
		paletteScheduler.Start()
		cleanup = append(cleanup, paletteScheduler.Stop)
	}

	mux := http.NewServeMux()

	fmt.Println("Color Palette API Starting...")
	if err := app.Serve(mux, cleanup...); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvSlice(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
