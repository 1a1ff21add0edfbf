package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/formaplace/formaplace-backend/internal/config"
	"github.com/formaplace/formaplace-backend/internal/database"
	"github.com/formaplace/formaplace-backend/internal/logger"
	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
	"github.com/formaplace/formaplace-backend/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	adminRepo := repository.NewAdminRepository(pool)
	adminService := service.NewAdminService(adminRepo)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	fmt.Print("Enter Last Name (nom): ")
	nom, _ := reader.ReadString('\n')
	nom = strings.TrimSpace(nom)
	if nom == "" {
		fmt.Println("Error: Last name is required")
		return
	}

	fmt.Print("Enter First Name (prenom): ")
	prenom, _ := reader.ReadString('\n')
	prenom = strings.TrimSpace(prenom)
	if prenom == "" {
		fmt.Println("Error: First name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	newAdmin := &model.Admin{
		Nom:          nom,
		Prenom:       prenom,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := adminService.Create(ctx, newAdmin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s %s' (%s) created with ID: %d\n", newAdmin.Prenom, newAdmin.Nom, newAdmin.Email, newAdmin.ID)
}
