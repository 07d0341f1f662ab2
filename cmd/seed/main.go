package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/swagatom/blog-api/config"
	"github.com/swagatom/blog-api/pkg/helpers"
)

// Seeds the bootstrap admin account. Credentials come from SEED_ADMIN_* env
// vars with local-dev defaults.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := envOr("SEED_ADMIN_USERNAME", "swagatomadmin")
	email := envOr("SEED_ADMIN_EMAIL", "admin@swagatom.local")
	password := envOr("SEED_ADMIN_PASSWORD", "password123")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role, is_verified)
		VALUES ($1, $2, $3, 'admin', true)
		ON CONFLICT (email) DO UPDATE SET role = 'admin', is_verified = true
		RETURNING id
	`, username, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s username=%s\n", id, email, username)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
