package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"flamtunes/config"
	"flamtunes/core/auth"
	"flamtunes/db"
	"flamtunes/model"
	"flamtunes/repository"

	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminPassword string
)

// Admin accounts are not self-service; they are provisioned from the command
// line by an operator with database access.
var adminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	Run: func(cmd *cobra.Command, args []string) {
		adminEmail = strings.TrimSpace(strings.ToLower(adminEmail))
		if adminEmail == "" || adminPassword == "" {
			log.Fatal("Both --email and --password are required")
		}
		if len(adminPassword) < 8 {
			log.Fatal("Password must be at least 8 characters")
		}

		cfg := config.Load()
		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.DB.Close()

		if err := db.InitDB(); err != nil {
			log.Fatalf("Failed to initialize database schema: %v", err)
		}

		hashed, err := auth.HashPassword(adminPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		userRepo := repository.NewMySQLUserRepository(db.DB)
		id, err := userRepo.CreateUser(context.Background(), &model.User{
			Email:        adminEmail,
			PasswordHash: hashed,
			IsAdmin:      true,
		})
		if err != nil {
			log.Fatalf("Failed to create admin account: %v", err)
		}

		fmt.Printf("Admin account created: %s (id %d)\n", adminEmail, id)
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)

	adminCmd.Flags().StringVarP(&adminEmail, "email", "e", "", "Admin email address")
	adminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "Admin password")
}
