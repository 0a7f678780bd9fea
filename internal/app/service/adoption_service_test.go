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

func setupAdoptionServiceTest(t *testing.T) (AdoptionService, *gorm.DB, *model.User, *model.Pet) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	adoptionRepo := repository.NewAdoptionRepository(testDB)
	petRepo := repository.NewPetRepository(testDB)
	adoptionService := NewAdoptionService(adoptionRepo, petRepo, testDB)

	applicant := &model.User{
		Username:     "applicant",
		Email:        "applicant@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(applicant)

	pet := &model.Pet{
		Name:        "Thor",
		Breed:       "Mixed breed",
		Species:     "dog",
		ForAdoption: true,
	}
	testDB.Create(pet)

	return adoptionService, testDB, applicant, pet
}

func TestAdoptionService_Apply(t *testing.T) {
	adoptionService, _, applicant, pet := setupAdoptionServiceTest(t)

	application, err := adoptionService.Apply(pet.ID, applicant.ID, "we have a yard")
	require.NoError(t, err)
	assert.Equal(t, model.AdoptionStatusPending, application.Status)

	// A second open application for the same pet is rejected
	_, err = adoptionService.Apply(pet.ID, applicant.ID, "again")
	assert.ErrorIs(t, err, ErrDuplicateApplication)
}

func TestAdoptionService_Apply_UnavailablePet(t *testing.T) {
	adoptionService, testDB, applicant, pet := setupAdoptionServiceTest(t)

	testDB.Model(pet).Update("for_adoption", false)

	_, err := adoptionService.Apply(pet.ID, applicant.ID, "")
	assert.ErrorIs(t, err, ErrPetNotForAdoption)

	_, err = adoptionService.Apply(9999, applicant.ID, "")
	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestAdoptionService_Approve_TransfersPetAndClosesRivals(t *testing.T) {
	adoptionService, testDB, applicant, pet := setupAdoptionServiceTest(t)

	rival := &model.User{
		Username:     "rival",
		Email:        "rival@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(rival)

	winning, err := adoptionService.Apply(pet.ID, applicant.ID, "")
	require.NoError(t, err)
	losing, err := adoptionService.Apply(pet.ID, rival.ID, "")
	require.NoError(t, err)

	approved, err := adoptionService.Approve(winning.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AdoptionStatusApproved, approved.Status)

	var adopted model.Pet
	testDB.First(&adopted, pet.ID)
	assert.True(t, adopted.Adopted)
	assert.False(t, adopted.ForAdoption)
	require.NotNil(t, adopted.OwnerID)
	assert.Equal(t, applicant.ID, *adopted.OwnerID)

	var other model.AdoptionApplication
	testDB.First(&other, losing.ID)
	assert.Equal(t, model.AdoptionStatusRejected, other.Status)

	// Approving twice fails
	_, err = adoptionService.Approve(winning.ID)
	assert.ErrorIs(t, err, ErrApplicationNotOpen)
}

func TestAdoptionService_Reject(t *testing.T) {
	adoptionService, testDB, applicant, pet := setupAdoptionServiceTest(t)

	application, err := adoptionService.Apply(pet.ID, applicant.ID, "")
	require.NoError(t, err)

	rejected, err := adoptionService.Reject(application.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AdoptionStatusRejected, rejected.Status)

	// The pet remains available
	var still model.Pet
	testDB.First(&still, pet.ID)
	assert.True(t, still.ForAdoption)
	assert.False(t, still.Adopted)

	_, err = adoptionService.Reject(9999)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
