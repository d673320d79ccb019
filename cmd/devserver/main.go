// Command devserver runs a stand-in POS backend for the admin console. It
// serves fixture data unless DATABASE_URL points at a retail database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"posadmin/config"
	"posadmin/database"
	"posadmin/handlers"
	"posadmin/routes"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: devserver [options]")
	flag.PrintDefaults()
}

var (
	addr = flag.String("addr", "", "address to serve (default :$PORT or :3000)")
	seed = flag.Int64("seed", 1, "seed for the generated fixture data")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	logger := log.Default()
	config.LoadEnv(logger)

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &handlers.Handler{Secret: []byte(cfg.JWTSecret)}

	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close(pool)

		src := handlers.NewPostgresSource(pool)
		h.Source, h.Users = src, src
	} else {
		log.Println("DATABASE_URL is not set, serving fixture data")
		users, err := seedUsers()
		if err != nil {
			log.Fatal(err)
		}
		h.Source, h.Users = handlers.NewFixtureSource(time.Now(), *seed), users
	}

	if cfg.GeminiAPIKey != "" {
		insighter, err := handlers.NewGeminiInsighter(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("Insights disabled: %v", err)
		} else {
			defer insighter.Close()
			h.Insighter = insighter
		}
	}

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app, h)

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down: %v", err)
		}
	}()

	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

// seedUsers creates the demo accounts of the fixture backend.
func seedUsers() (*handlers.MemoryUsers, error) {
	users := handlers.NewMemoryUsers(0)
	for _, u := range []struct{ username, password, name, role string }{
		{"admin", "admin123", "Store Owner", "ADMIN"},
		{"cashier", "cashier123", "Front Counter", "CASHIER"},
	} {
		if _, err := users.Add(u.username, u.password, u.name, u.role); err != nil {
			return nil, err
		}
	}
	return users, nil
}
