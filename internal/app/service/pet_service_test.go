package service

import (
	"testing"
	"time"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPetServiceTest(t *testing.T) (PetService, *gorm.DB, *model.User, *model.Pet) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	petRepo := repository.NewPetRepository(testDB)
	petService := NewPetService(petRepo)

	owner := &model.User{
		Username:     "tutor",
		Email:        "tutor@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(owner)

	pet := &model.Pet{
		Name:    "Luna",
		Species: "cat",
		OwnerID: &owner.ID,
	}
	testDB.Create(pet)

	return petService, testDB, owner, pet
}

func vaccineDate(daysAgo int) time.Time {
	return time.Now().AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour)
}

func TestPetService_AddVaccine_RequiresNameAndDate(t *testing.T) {
	petService, _, owner, pet := setupPetServiceTest(t)

	_, err := petService.AddVaccine(pet.ID, owner.ID, false, VaccineInput{})

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"name", "date"}, missing.Fields)

	_, err = petService.AddVaccine(pet.ID, owner.ID, false, VaccineInput{Name: "V10"})
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"date"}, missing.Fields)
}

func TestPetService_VaccineRoundTrip(t *testing.T) {
	petService, _, owner, pet := setupPetServiceTest(t)

	next := vaccineDate(-365)
	vaccine, err := petService.AddVaccine(pet.ID, owner.ID, false, VaccineInput{
		Name:    "Antirrábica",
		Date:    vaccineDate(0),
		NextDue: &next,
		Notes:   "no reaction",
	})
	require.NoError(t, err)
	assert.NotZero(t, vaccine.ID)
	assert.Equal(t, pet.ID, vaccine.PetID)

	got, err := petService.GetByID(pet.ID)
	require.NoError(t, err)
	require.Len(t, got.Vaccines, 1)
	assert.Equal(t, "Antirrábica", got.Vaccines[0].Name)

	require.NoError(t, petService.RemoveVaccine(pet.ID, vaccine.ID, owner.ID, false))

	got, err = petService.GetByID(pet.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Vaccines)

	err = petService.RemoveVaccine(pet.ID, vaccine.ID, owner.ID, false)
	assert.ErrorIs(t, err, ErrVaccineNotFound)
}

func TestPetService_VaccineOwnership(t *testing.T) {
	petService, testDB, _, pet := setupPetServiceTest(t)

	other := &model.User{
		Username:     "intruder",
		Email:        "intruder@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(other)

	input := VaccineInput{Name: "V8", Date: vaccineDate(0)}

	_, err := petService.AddVaccine(pet.ID, other.ID, false, input)
	assert.ErrorIs(t, err, ErrPetNotOwned)

	// Admins manage any pet's history
	vaccine, err := petService.AddVaccine(pet.ID, other.ID, true, input)
	require.NoError(t, err)

	assert.ErrorIs(t, petService.RemoveVaccine(pet.ID, vaccine.ID, other.ID, false), ErrPetNotOwned)
	assert.NoError(t, petService.RemoveVaccine(pet.ID, vaccine.ID, other.ID, true))

	_, err = petService.AddVaccine(9999, other.ID, true, input)
	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestPetService_ConsultationRoundTrip(t *testing.T) {
	petService, _, owner, pet := setupPetServiceTest(t)

	_, err := petService.AddConsultation(pet.ID, owner.ID, false, ConsultationInput{Reason: "limping"})
	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"date"}, missing.Fields)

	consultation, err := petService.AddConsultation(pet.ID, owner.ID, false, ConsultationInput{
		Date:   vaccineDate(2),
		Reason: "limping",
		Notes:  "sprained paw",
	})
	require.NoError(t, err)
	assert.NotZero(t, consultation.ID)

	got, err := petService.GetByID(pet.ID)
	require.NoError(t, err)
	require.Len(t, got.Consultations, 1)
	assert.Equal(t, "limping", got.Consultations[0].Reason)

	require.NoError(t, petService.RemoveConsultation(pet.ID, consultation.ID, owner.ID, false))
	err = petService.RemoveConsultation(pet.ID, consultation.ID, owner.ID, false)
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestPetService_GetByID_OrdersHistoryNewestFirst(t *testing.T) {
	petService, _, owner, pet := setupPetServiceTest(t)

	_, err := petService.AddVaccine(pet.ID, owner.ID, false, VaccineInput{Name: "old", Date: vaccineDate(30)})
	require.NoError(t, err)
	_, err = petService.AddVaccine(pet.ID, owner.ID, false, VaccineInput{Name: "recent", Date: vaccineDate(1)})
	require.NoError(t, err)

	got, err := petService.GetByID(pet.ID)
	require.NoError(t, err)
	require.Len(t, got.Vaccines, 2)
	assert.Equal(t, "recent", got.Vaccines[0].Name)
	assert.Equal(t, "old", got.Vaccines[1].Name)
}
