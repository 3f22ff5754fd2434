package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fatoora/internal/config"
	"fatoora/internal/infra"
	"fatoora/internal/model"
	"fatoora/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the initial admin user. Idempotent: exits cleanly when the username
// already exists.
//
//	DATABASE_URL=... go run ./cmd/seedadmin <username> <password>
func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: seedadmin <username> <password>")
		os.Exit(1)
	}
	username, password := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	if _, err := users.FindByUsername(ctx, username); err == nil {
		log.Info().Str("username", username).Msg("admin already exists, nothing to do")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("user lookup failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	admin := &model.User{
		Username:     username,
		Name:         "Administrator",
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}
	log.Info().Str("username", username).Msg("admin user created")
}
