package scheduler

import (
	"testing"
	"time"

	"github.com/appessoa/PetGo/config"
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartJanitor_Run(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{
		Username:     "sleeper",
		Email:        "sleeper@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(user)

	stale := &model.Cart{UserID: user.ID, Status: model.CartStatusOpen, IsActive: true}
	testDB.Create(stale)
	// Backdate past the abandonment window
	testDB.Model(stale).UpdateColumn("updated_at", time.Now().Add(-48*time.Hour))

	fresh := &model.Cart{UserID: user.ID, Status: model.CartStatusOpen, IsActive: true}
	testDB.Create(fresh)

	closed := &model.Cart{UserID: user.ID, Status: model.CartStatusClosed, IsActive: false}
	testDB.Create(closed)
	testDB.Model(closed).UpdateColumn("updated_at", time.Now().Add(-48*time.Hour))

	janitor := NewCartJanitor(repository.NewCartRepository(testDB), config.CartConfig{
		AbandonAfter: 24 * time.Hour,
		JanitorCron:  "0 3 * * *",
	})
	janitor.Run()

	var check model.Cart
	testDB.First(&check, stale.ID)
	assert.Equal(t, model.CartStatusAbandoned, check.Status)
	assert.False(t, check.IsActive)

	testDB.First(&check, fresh.ID)
	assert.Equal(t, model.CartStatusOpen, check.Status)
	assert.True(t, check.IsActive)

	testDB.First(&check, closed.ID)
	assert.Equal(t, model.CartStatusClosed, check.Status)
}
