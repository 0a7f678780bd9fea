package service

import (
	"testing"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo, testDB)

	user := &model.User{
		Username:     "tutor",
		Email:        "tutor@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Premium Dog Food",
		Price:    100.0,
		Stock:    10,
		Category: "food",
		Species:  "dog",
		IsActive: true,
	}
	testDB.Create(product)

	return cartService, testDB, user, product
}

func TestCartService_GetCart_CreatesSingleOpenCart(t *testing.T) {
	cartService, testDB, user, _ := setupCartServiceTest(t)

	first, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, model.CartStatusOpen, first.Status)
	assert.Empty(t, first.Items)

	second, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	testDB.Model(&model.Cart{}).
		Where("user_id = ? AND status = ?", user.ID, model.CartStatusOpen).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCartService_OpenCartUniqueIndexRejectsDuplicate(t *testing.T) {
	cartService, testDB, user, _ := setupCartServiceTest(t)

	first, err := cartService.GetCart(user.ID)
	require.NoError(t, err)

	// A second open cart for the same user must be rejected by the database,
	// not just by the check in the service
	duplicate := &model.Cart{
		UserID:   user.ID,
		Status:   model.CartStatusOpen,
		IsActive: true,
	}
	err = testDB.Create(duplicate).Error
	require.Error(t, err)

	// A closed cart for the same user is still allowed
	closed := &model.Cart{
		UserID:   user.ID,
		Status:   model.CartStatusClosed,
		IsActive: true,
	}
	require.NoError(t, testDB.Create(closed).Error)

	cart, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, cart.ID)
}

func TestCartService_ApplyItem_IncludeAccumulates(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	cart, err := cartService.ApplyItem(user.ID, product.ID, 2, model.ModeInclude)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = cartService.ApplyItem(user.ID, product.ID, 3, model.ModeInclude)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 500.0, cart.Subtotal)
}

func TestCartService_ApplyItem_SetReplaces(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.ApplyItem(user.ID, product.ID, 5, model.ModeInclude)
	require.NoError(t, err)

	cart, err := cartService.ApplyItem(user.ID, product.ID, 2, model.ModeSet)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 200.0, cart.Subtotal)
}

func TestCartService_ApplyItem_RemoveDropsAtZero(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.ApplyItem(user.ID, product.ID, 3, model.ModeInclude)
	require.NoError(t, err)

	cart, err := cartService.ApplyItem(user.ID, product.ID, 2, model.ModeRemove)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = cartService.ApplyItem(user.ID, product.ID, 5, model.ModeRemove)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Subtotal)
}

func TestCartService_ApplyItem_RefreshesPriceSnapshot(t *testing.T) {
	cartService, testDB, user, product := setupCartServiceTest(t)

	cart, err := cartService.ApplyItem(user.ID, product.ID, 1, model.ModeInclude)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cart.Items[0].UnitPrice)

	testDB.Model(product).Update("price", 150.0)

	cart, err = cartService.ApplyItem(user.ID, product.ID, 1, model.ModeInclude)
	require.NoError(t, err)
	assert.Equal(t, 150.0, cart.Items[0].UnitPrice)
	assert.Equal(t, 300.0, cart.Subtotal)
}

func TestCartService_ApplyItem_RejectsNonPositiveQuantity(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.ApplyItem(user.ID, product.ID, 0, model.ModeInclude)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = cartService.ApplyItem(user.ID, product.ID, -1, model.ModeSet)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_ApplyItem_RejectsInactiveProduct(t *testing.T) {
	cartService, testDB, user, product := setupCartServiceTest(t)

	testDB.Model(product).Update("is_active", false)

	_, err := cartService.ApplyItem(user.ID, product.ID, 1, model.ModeInclude)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartService_ApplyItem_RejectsUnknownProduct(t *testing.T) {
	cartService, _, user, _ := setupCartServiceTest(t)

	_, err := cartService.ApplyItem(user.ID, 9999, 1, model.ModeInclude)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartService_RemoveItem_Idempotent(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	cart, err := cartService.ApplyItem(user.ID, product.ID, 2, model.ModeInclude)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = cartService.RemoveItem(user.ID, itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Removing again is a no-op, not an error
	cart, err = cartService.RemoveItem(user.ID, itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_RemoveItem_OtherUsersItem(t *testing.T) {
	cartService, testDB, user, product := setupCartServiceTest(t)

	other := &model.User{
		Username:     "other",
		Email:        "other@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(other)

	cart, err := cartService.ApplyItem(user.ID, product.ID, 1, model.ModeInclude)
	require.NoError(t, err)

	_, err = cartService.RemoveItem(other.ID, cart.Items[0].ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}
