package db

import (
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/pkg/logger"
)

// openCartIndex enforces at most one open cart per user at the database
// level. Check-then-create alone cannot guarantee this: a locking SELECT that
// matches no rows locks nothing, so two concurrent sessions could both insert.
const openCartIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_open
	ON carts (user_id) WHERE status = 'open' AND is_active`

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Veterinarian{},
		&model.Address{},
		&model.Pet{},
		&model.Vaccine{},
		&model.Consultation{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Scheduling{},
		&model.Prontuario{},
		&model.AdoptionApplication{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := DB.Exec(openCartIndex).Error; err != nil {
		logger.Error("Failed to create open-cart unique index", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
