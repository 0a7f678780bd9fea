package main

import (
	"time"

	"github.com/appessoa/PetGo/config"
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/db"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/appessoa/PetGo/pkg/util"
	"gorm.io/gorm"
)

// Seeds the database with demo accounts, products and pets. Existing rows
// (matched by unique keys) are left alone, so the tool is safe to re-run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	conn := db.GetDB()

	admin := seedUser(conn, "admin", "admin@petgo.dev", "admin12345", model.RoleAdmin)
	vetUser := seedUser(conn, "dra.ana", "ana@petgo.dev", "vet12345678", model.RoleVet)
	owner := seedUser(conn, "joao", "joao@petgo.dev", "user12345678", model.RoleUser)

	seedVet(conn, vetUser.ID, "Dra. Ana Souza", "CRMV-SP 12345", "Clínica geral")

	seedProduct(conn, "Premium Dog Food 10kg", "Complete dry food for adult dogs", 189.90, 40, "food", "dog")
	seedProduct(conn, "Cat Scratching Post", "Sisal post with hanging toy", 79.50, 25, "toys", "cat")
	seedProduct(conn, "Anti-Flea Shampoo 500ml", "Gentle formula for sensitive skin", 34.90, 60, "hygiene", "dog")
	seedProduct(conn, "Bird Seed Mix 1kg", "Mixed seeds for small birds", 19.90, 80, "food", "bird")

	dob := time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC)
	seedPet(conn, "Rex", "Labrador", "dog", 28.4, "M", &dob, &owner.ID, false)
	seedPet(conn, "Mimi", "Siamese", "cat", 4.1, "F", nil, &owner.ID, false)
	seedPet(conn, "Thor", "Mixed breed", "dog", 15.0, "M", nil, nil, true)

	_ = admin
	logger.Info("Seed completed")
}

func seedUser(conn *gorm.DB, username, email, password string, role model.UserRole) *model.User {
	var user model.User
	if err := conn.Where("email = ?", email).First(&user).Error; err == nil {
		return &user
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Fatal("Failed to hash seed password", err)
	}
	user = model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := conn.Create(&user).Error; err != nil {
		logger.Fatal("Failed to seed user", err, map[string]interface{}{
			"email": email,
		})
	}
	logger.Info("Seeded user", map[string]interface{}{
		"email": email,
		"role":  role,
	})
	return &user
}

func seedVet(conn *gorm.DB, userID uint, name, crmv, specialty string) {
	var vet model.Veterinarian
	if err := conn.Where("user_id = ?", userID).First(&vet).Error; err == nil {
		return
	}
	vet = model.Veterinarian{
		UserID:    userID,
		Name:      name,
		CRMV:      crmv,
		Specialty: specialty,
		IsActive:  true,
	}
	if err := conn.Create(&vet).Error; err != nil {
		logger.Fatal("Failed to seed veterinarian", err)
	}
	logger.Info("Seeded veterinarian", map[string]interface{}{
		"name": name,
		"crmv": crmv,
	})
}

func seedProduct(conn *gorm.DB, name, description string, price float64, stock int, category, species string) {
	var product model.Product
	if err := conn.Where("name = ?", name).First(&product).Error; err == nil {
		return
	}
	product = model.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
		Species:     species,
		IsActive:    true,
	}
	if err := conn.Create(&product).Error; err != nil {
		logger.Fatal("Failed to seed product", err, map[string]interface{}{
			"name": name,
		})
	}
	logger.Info("Seeded product", map[string]interface{}{
		"name": name,
	})
}

func seedPet(conn *gorm.DB, name, breed, species string, weight float64, sex string, dob *time.Time, ownerID *uint, forAdoption bool) {
	var pet model.Pet
	query := conn.Where("name = ? AND breed = ?", name, breed)
	if err := query.First(&pet).Error; err == nil {
		return
	}
	pet = model.Pet{
		Name:        name,
		Breed:       breed,
		Species:     species,
		Weight:      weight,
		Sex:         sex,
		DOB:         dob,
		OwnerID:     ownerID,
		ForAdoption: forAdoption,
	}
	if err := conn.Create(&pet).Error; err != nil {
		logger.Fatal("Failed to seed pet", err, map[string]interface{}{
			"name": name,
		})
	}
	logger.Info("Seeded pet", map[string]interface{}{
		"name":         name,
		"for_adoption": forAdoption,
	})
}
