package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/recipe-share/internal/handlers"
	"github.com/sbilibin2017/recipe-share/internal/jwt"
	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/repositories"
	"github.com/sbilibin2017/recipe-share/internal/services"
	"github.com/sbilibin2017/recipe-share/internal/sessions"

	_ "modernc.org/sqlite"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		databasePath, dbMaxOpenConns,
		sessionStore, sessionSecretKey, sessionTTLHour,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		databasePath, dbMaxOpenConns,
		sessionStore, sessionSecretKey, sessionTTLHour,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// all application, database, session, and Redis configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	databasePath string, dbMaxOpenConns int,
	sessionStore, sessionSecretKey string, sessionTTLHour int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// SQLite config. A single open connection serializes writes, which is
	// how SQLite wants to be driven.
	databasePath = getEnv("DATABASE_PATH", "recipes.db")
	if dbMaxOpenConns, err = strconv.Atoi(getEnv("DATABASE_MAX_OPEN_CONNS", "1")); err != nil {
		return
	}

	// Session config
	sessionStore = getEnv("SESSION_STORE", "memory")
	sessionSecretKey = getEnv("SESSION_SECRET_KEY", "my_super_secret_key")
	if sessionTTLHour, err = strconv.Atoi(getEnv("SESSION_TTL_HOUR", "168")); err != nil {
		return
	}

	// Redis config, used when SESSION_STORE=redis
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, session store, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	databasePath string, dbMaxOpenConns int,
	sessionStore, sessionSecretKey string, sessionTTLHour int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Open SQLite database. Foreign keys are off by default in SQLite;
	// the busy timeout keeps concurrent writers waiting instead of failing.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", databasePath)
	logger.Log.Infof("Opening SQLite database at %s", databasePath)

	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		logger.Log.Errorw("SQLite connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(dbMaxOpenConns)

	if err := repositories.InitSchema(ctx, db); err != nil {
		logger.Log.Errorw("schema initialization error", "error", err)
		return err
	}

	// Session store: in-memory by default, Redis when configured
	var store sessions.Store = sessions.NewMemoryStore()
	if sessionStore == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
			Password:     redisPassword,
			DB:           redisDB,
			PoolSize:     redisPoolSize,
			MinIdleConns: redisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Errorw("Redis connection error", "error", err)
			return err
		}
		defer rdb.Close()
		store = sessions.NewRedisStore(rdb)
		logger.Log.Infof("Sessions stored in Redis at %s:%d", redisHost, redisPort)
	}

	// Initialize session manager
	sessionTTL := time.Duration(sessionTTLHour) * time.Hour
	tokens := jwt.New(sessionSecretKey, sessionTTL)
	manager := sessions.NewManager(store, tokens, sessionTTL)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	recipeReadRepo := repositories.NewRecipeReadRepository(db)
	recipeWriteRepo := repositories.NewRecipeWriteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo)
	recipeService := services.NewRecipeService(recipeReadRepo, recipeWriteRepo)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService, authService, manager)
	loginHandler := handlers.NewLoginHandler(authService, authService, manager)
	logoutHandler := handlers.NewLogoutHandler(manager)
	listHandler := handlers.NewRecipeListHandler(recipeService, authService, manager)
	detailHandler := handlers.NewRecipeDetailHandler(recipeService, authService, manager)
	createHandler := handlers.NewRecipeCreateHandler(recipeService, authService, manager)
	editHandler := handlers.NewRecipeEditHandler(recipeService, authService, manager)
	deleteHandler := handlers.NewRecipeDeleteHandler(recipeService, authService, manager)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.SessionMiddleware(manager))

	r.Get("/", listHandler)
	r.Get("/register", registerHandler)
	r.Post("/register", registerHandler)
	r.Get("/login", loginHandler)
	r.Post("/login", loginHandler)
	r.Get("/logout", logoutHandler)
	r.Get("/recipes", listHandler)
	r.Get("/recipes/new", createHandler)
	r.Post("/recipes/new", createHandler)
	r.Get("/recipes/{id}", detailHandler)
	r.Get("/recipes/{id}/edit", editHandler)
	r.Post("/recipes/{id}/edit", editHandler)
	r.Post("/recipes/{id}/delete", deleteHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
