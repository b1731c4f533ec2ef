// Command portal-probe is a smoke-test client for a running booking backend.
//
// It logs in, lists a page of hotels through the authenticated HTTP client,
// forces a token refresh, and logs out, printing each step. Configuration
// comes from the environment (a .env file is honored when present):
//
//	PORTAL_API_URL       backend base URL (default http://localhost:8080/api)
//	PORTAL_EMAIL         login email
//	PORTAL_PASSWORD      login password
//	PORTAL_SESSION_FILE  session persistence path (default ./.portal-session)
//
// Run:
//
//	go run ./cmd/portal-probe
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	goPortal "github.com/caribevibes/goPortal"
	"github.com/caribevibes/goPortal/services"
	"github.com/caribevibes/goPortal/session"
)

func main() {
	_ = godotenv.Load()

	baseURL := envOr("PORTAL_API_URL", "http://localhost:8080/api")
	email := os.Getenv("PORTAL_EMAIL")
	password := os.Getenv("PORTAL_PASSWORD")
	sessionFile := envOr("PORTAL_SESSION_FILE", ".portal-session")

	if email == "" || password == "" {
		log.Fatal("PORTAL_EMAIL and PORTAL_PASSWORD are required")
	}

	store, err := session.NewFileStore(sessionFile)
	if err != nil {
		log.Fatal("session store:", err)
	}

	cfg := goPortal.DefaultConfig()
	cfg.API.BaseURL = baseURL

	client, err := goPortal.New().
		WithConfig(cfg).
		WithStore(store).
		WithNavigator(goPortal.NavigatorFunc(func(route string) {
			fmt.Println("navigate ->", route)
		})).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		log.Fatal("build client:", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessions := client.Sessions()

	if sessions.IsAuthenticated() {
		fmt.Println("restored session for", sessions.CurrentUser().Email)
	} else {
		resp, err := sessions.Login(ctx, goPortal.Credentials{Email: email, Password: password})
		if err != nil {
			log.Fatal("login:", err)
		}
		fmt.Println("logged in as", resp.User.Email)
	}

	rest := services.NewClient(client.HTTP(), baseURL, cfg.Retry)
	hotels := services.NewHotelService(rest)

	page, err := hotels.List(ctx, 0, 5)
	if err != nil {
		log.Fatal("list hotels:", err)
	}
	fmt.Printf("hotels: %d total, showing %d\n", page.TotalElements, len(page.Content))
	for _, h := range page.Content {
		fmt.Printf("  [%d] %s (%s) %.2f\n", h.ID, h.Name, h.Location, h.BasePrice)
	}

	token, err := sessions.RefreshToken(ctx)
	if err != nil {
		log.Fatal("refresh:", err)
	}
	fmt.Println("refreshed token:", truncate(token, 16))

	if err := sessions.Logout(ctx); err != nil {
		log.Fatal("logout:", err)
	}
	fmt.Println("logged out")

	snap := client.MetricsSnapshot()
	fmt.Printf("metrics: login=%d refresh=%d requests=%d\n",
		snap.Counters[goPortal.MetricLoginSuccess],
		snap.Counters[goPortal.MetricRefreshSuccess],
		snap.Counters[goPortal.MetricRequestAuthenticated])
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
