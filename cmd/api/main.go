package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/pawmart/pawmart-backend/internal/auth"
	"github.com/pawmart/pawmart-backend/internal/config"
	"github.com/pawmart/pawmart-backend/internal/dashboard"
	"github.com/pawmart/pawmart-backend/internal/dog"
	"github.com/pawmart/pawmart-backend/internal/order"
	"github.com/pawmart/pawmart-backend/internal/review"
	"github.com/pawmart/pawmart-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	authMW := auth.NewMiddleware(cfg.JWTSecret)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, authMW)

	dogService := dog.NewService(dog.NewPostgresRepository(db))
	dogHandler := dog.NewHandler(dogService, cfg.UploadDir)
	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db)))
	reviewHandler := review.NewHandler(review.NewService(review.NewPostgresRepository(db), dogService))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(dashboard.NewPostgresRepository(db)))

	seedAdmin(userService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to PawMart API"})
	})
	app.Static("/uploads", cfg.UploadDir)

	userHandler.RegisterPublicRoutes(app)
	dogHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)

	userHandler.RegisterProtectedRoutes(app, authMW)
	dogHandler.RegisterProtectedRoutes(app, authMW)
	orderHandler.RegisterProtectedRoutes(app, authMW)
	reviewHandler.RegisterProtectedRoutes(app, authMW)
	dashboardHandler.RegisterProtectedRoutes(app, authMW)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%s)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	return db
}

func ensureSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			mobile_number TEXT NOT NULL,
			password TEXT NOT NULL,
			user_role TEXT NOT NULL,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS dogs (
			dog_id SERIAL PRIMARY KEY,
			dog_name TEXT NOT NULL,
			breed TEXT NOT NULL,
			age INT NOT NULL CHECK (age >= 0),
			price NUMERIC NOT NULL CHECK (price >= 0),
			stock_quantity INT NOT NULL CHECK (stock_quantity >= 0),
			category TEXT NOT NULL,
			cover_image TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			order_date TEXT NOT NULL,
			order_status TEXT NOT NULL,
			shipping_address TEXT NOT NULL,
			billing_address TEXT NOT NULL,
			total_amount NUMERIC NOT NULL DEFAULT 0 CHECK (total_amount >= 0),
			user_id INT NOT NULL REFERENCES users (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_item_id SERIAL PRIMARY KEY,
			quantity INT NOT NULL CHECK (quantity >= 1),
			price NUMERIC NOT NULL CHECK (price >= 0),
			dog_id INT NOT NULL REFERENCES dogs (dog_id),
			order_id INT NOT NULL REFERENCES orders (order_id)
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			review_id SERIAL PRIMARY KEY,
			review_text TEXT NOT NULL,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			review_date TEXT,
			user_id INT NOT NULL REFERENCES users (user_id),
			dog_id INT NOT NULL REFERENCES dogs (dog_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}
	}
}

// seedAdmin creates the admin account on first boot when the env asks for
// one. Registration over the API always yields plain users.
func seedAdmin(users *user.Service) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	_, err := users.Register(user.User{
		Username:     "admin",
		Email:        email,
		MobileNumber: "0000000000",
		Password:     password,
		Role:         auth.RoleAdmin,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil && err != user.ErrEmailExists {
		log.Printf("warning: could not seed admin user: %v", err)
	}
}
