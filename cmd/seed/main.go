// Package main seeds the bootstrap super-admin account.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/webteam-oss/backoffice-api/internal/config"
	"github.com/webteam-oss/backoffice-api/internal/database"
	"github.com/webteam-oss/backoffice-api/internal/models"
	"github.com/webteam-oss/backoffice-api/internal/rbac"
	"github.com/webteam-oss/backoffice-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	name := os.Getenv("SEED_ADMIN_NAME")
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if name == "" || email == "" || password == "" {
		log.Fatal("SEED_ADMIN_NAME, SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to apply migrations:", err)
	}

	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	if existing, err := userRepo.FindByEmail(ctx, email); err == nil {
		log.Printf("account %s already exists (id %d), nothing to do", existing.Email, existing.ID)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Failed to look up seed account:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         rbac.RoleSuperAdmin,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatal("Failed to create seed account:", err)
	}

	log.Printf("created super-admin %s (id %d)", user.Email, user.ID)
}
