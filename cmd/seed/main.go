package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carlog/internal/config"
	"carlog/internal/db"
	"carlog/internal/model"
	"carlog/internal/repository"
)

// Development fixtures: two users with one vehicle each, so both the owned
// and the foreign-vehicle paths can be exercised against a local server.
var fixtures = []struct {
	email    string
	password string
	fullName string
	vehicle  model.Vehicle
}{
	{
		email:    "demo@example.com",
		password: "demo-password",
		fullName: "Demo Driver",
		vehicle:  model.Vehicle{Make: "Toyota", Model: "Corolla", Year: 2019, LicensePlate: "DEMO-001"},
	},
	{
		email:    "other@example.com",
		password: "other-password",
		fullName: "Other Driver",
		vehicle:  model.Vehicle{Make: "Honda", Model: "Civic", Year: 2021, LicensePlate: "DEMO-002"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Vehicle{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)

	for _, f := range fixtures {
		if existing, err := userRepo.FindByEmail(ctx, f.email); err == nil && existing != nil {
			log.Printf("User %s already seeded, skipping", f.email)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(f.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &model.User{
			Email:        f.email,
			PasswordHash: string(hashed),
			FullName:     f.fullName,
			Role:         model.RoleUser,
			IsActive:     true,
			CreatedAt:    time.Now().UTC(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", f.email, err)
		}

		vehicle := f.vehicle
		vehicle.UserID = user.ID
		if err := vehicleRepo.Create(ctx, &vehicle); err != nil {
			log.Fatalf("Failed to create vehicle for %s: %v", f.email, err)
		}

		log.Printf("Seeded user %s with vehicle %s (%s %s)", f.email, vehicle.ID, vehicle.Make, vehicle.Model)
	}

	log.Println("Seed completed")
}
