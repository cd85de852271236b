// seed inserts a demo user and a spread of wishes into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wishify/wishify/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedUsername = "demo"
	seedEmail    = "demo@wishify.local"
	seedPassword = "demo-password-1"
)

type wishSpec struct {
	name     string
	email    string
	wishType string
	daysOut  int
}

var wishes = []wishSpec{
	// Already due — the dispatcher should pick these up on its next cycle
	{"Alice Johnson", "alice@example.com", "Birthday", -1},
	{"Bob & Carol", "bob@example.com", "Anniversary", 0},

	// Upcoming
	{"Dave Smith", "dave@example.com", "Birthday", 3},
	{"Erin Walker", "erin@example.com", "Holiday", 7},
	{"Frank Miller", "frank@example.com", "Other", 14},
	{"Grace Lee", "grace@example.com", "Birthday", 30},
	{"Henry Park", "henry@example.com", "Anniversary", 60},
	{"Ivy Chen", "ivy@example.com", "Birthday", 90},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		pool.Close()
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user (idempotent re-runs)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedUsername, seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		pool.Close()
		log.Fatalf("upsert user: %v", err)
	}

	today := time.Now().Truncate(24 * time.Hour)

	var inserted int
	for _, spec := range wishes {
		_, err := pool.Exec(ctx, `
			INSERT INTO wishes (user_id, name, email, wish_type, wish_date)
			VALUES ($1, $2, $3, $4, $5)`,
			userID, spec.name, spec.email, spec.wishType,
			today.AddDate(0, 0, spec.daysOut),
		)
		if err != nil {
			pool.Close()
			log.Fatalf("insert wish %s: %v", spec.name, err)
		}
		inserted++
	}

	pool.Close()

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:           %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:        %s\n", userID)
	fmt.Printf("  Wishes created: %d (2 already due)\n", inserted)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/users/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println("    # → {\"token\":\"eyJ...\",\"message\":\"Logged in successfully\"}")
	fmt.Println()
	fmt.Println("  Step 2 — list the wishes:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/wishes -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3 — run the dispatcher and watch the two due greetings go out:")
	fmt.Println()
	fmt.Println("    go run ./cmd/dispatcher")
	fmt.Println("    # in ENV=local the greetings are logged instead of emailed")
}
