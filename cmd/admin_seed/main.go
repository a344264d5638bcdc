// Command admin_seed creates the initial admin account. Admins review
// top-up requests and perform status overrides; they have no wallet.
package main

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"campuspay/internal/config"
	"campuspay/internal/logger"
	"campuspay/internal/models"
	"campuspay/internal/repositories"
)

func main() {
	config.LoadEnv()
	log := logger.New("admin_seed", config.GetEnv("LOG_LEVEL", "info"), !config.IsProduction())

	adminEmail := config.GetEnv("ADMIN_EMAIL", "")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
	adminName := config.GetEnv("ADMIN_NAME", "Administrator")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	db, err := repositories.InitDB(repositories.DBConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("database initialization failed")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database instance")
	}
	defer sqlDB.Close()

	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	if _, err := users.GetByEmail(ctx, adminEmail); err == nil {
		log.Info().Str("email", adminEmail).Msg("admin already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	admin := &models.User{
		Email:    adminEmail,
		Password: string(hash),
		Name:     adminName,
		Role:     models.RoleAdmin,
		Status:   "active",
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	log.Info().Uint("user_id", admin.ID).Str("email", adminEmail).Msg("admin account created")
}
