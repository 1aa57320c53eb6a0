/*
main.go - Application entry point

PURPOSE:

	Initializes and starts the commission dashboard server. Handles
	configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
 1. Load .env and parse command-line flags
 2. Initialize SQLite report store
 3. Build the CRM client, auth chain, and signer
 4. Configure HTTP router and start the roster refresher
 5. Start server with graceful shutdown

COMMAND-LINE FLAGS:

	-port      HTTP server port (default: 8080)
	-db        SQLite database path (default: commission.db)
	           Use ":memory:" for an in-memory database
	-calendar  Optional JSON file overriding the compiled-in cycle table

ENVIRONMENT:

	JWT_SECRET       Session token signing secret (required)
	CRM_API_ID       tld-api-id header value
	CRM_API_KEY      tld-api-key header value
	CRM_POLICIES_URL Policies egress endpoint
	CRM_USERS_URL    Users egress endpoint
	ADMIN_USERNAME   Admin login (default: admin@example.com)
	ADMIN_PASSWORD   Admin password (required)
	AGENT_PASSWORD   Shared agent password (empty disables agent login)

GRACEFUL SHUTDOWN:

	On SIGINT/SIGTERM:
	1. Stop accepting new connections
	2. Wait for active requests to complete (30s timeout)
	3. Stop the roster refresher and close the database
	4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hcs/commission-engine/api"
	"github.com/hcs/commission-engine/auth"
	"github.com/hcs/commission-engine/commission"
	"github.com/hcs/commission-engine/crm"
	"github.com/hcs/commission-engine/store/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "commission.db", "SQLite database path")
	calendarPath := flag.String("calendar", "", "JSON cycle table overriding the built-in schedule")
	flag.Parse()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD environment variable is required")
	}
	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin@example.com"
	}

	// Cycle calendar
	calendar := commission.DefaultCalendar()
	if *calendarPath != "" {
		data, err := os.ReadFile(*calendarPath)
		if err != nil {
			log.Fatalf("Failed to read calendar file: %v", err)
		}
		calendar, err = commission.ParseCalendar(data)
		if err != nil {
			log.Fatalf("Failed to parse calendar file: %v", err)
		}
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// CRM facade
	crmClient := crm.NewClient(crm.Config{
		PoliciesURL: os.Getenv("CRM_POLICIES_URL"),
		UsersURL:    os.Getenv("CRM_USERS_URL"),
		APIID:       os.Getenv("CRM_API_ID"),
		APIKey:      os.Getenv("CRM_API_KEY"),
	})

	// Auth chain: configured admins first, then the CRM-fed roster.
	admins := auth.NewStaticTable([]auth.StaticUser{
		{Username: adminUsername, Password: adminPassword, Name: "Admin User", Role: auth.RoleAdmin},
	})
	directory := auth.NewDirectory(os.Getenv("AGENT_PASSWORD"))
	signer := auth.NewSigner(jwtSecret, 12*time.Hour)

	// Initialize handler
	handler := api.NewHandler(store, auth.Chain{admins, directory}, signer, crmClient, calendar, directory)

	// Keep the agent roster fresh in the background.
	refresher := api.NewAgentRefresher(crmClient, directory)
	refresher.Start()
	defer refresher.Stop()

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
