package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/avelins/tapcore/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	dbPool, err := database.NewPool(connString,
		database.DefaultMaxConnections,
		database.DefaultMaxIdleTime,
		database.DefaultMaxLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// Dump persisted sessions
	fmt.Println("--- Sessions ---")
	rows, err := dbPool.Query(ctx, "SELECT user_id, updated_at FROM sessions ORDER BY updated_at DESC")
	if err != nil {
		log.Fatalf("Failed to query sessions: %v", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var userID string
		var updatedAt time.Time
		if err := rows.Scan(&userID, &updatedAt); err != nil {
			log.Printf("Failed to scan session: %v", err)
			continue
		}
		fmt.Printf("User: %s, UpdatedAt: %s\n", userID, updatedAt.Format(time.RFC3339))
		count++
	}
	fmt.Printf("\n%d session(s) total\n", count)

	// Dump one full state when requested
	if len(os.Args) > 1 {
		userID := os.Args[1]
		fmt.Printf("\n--- State for %s ---\n", userID)

		var state []byte
		err := dbPool.QueryRow(ctx, "SELECT state FROM sessions WHERE user_id = $1", userID).Scan(&state)
		if err != nil {
			log.Fatalf("Failed to load state: %v", err)
		}
		fmt.Println(string(state))
	}
}
