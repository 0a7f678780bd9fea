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

func setupProntuarioServiceTest(t *testing.T) (ProntuarioService, *gorm.DB, *model.User, *model.Pet, *model.Veterinarian) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	prontuarioRepo := repository.NewProntuarioRepository(testDB)
	petRepo := repository.NewPetRepository(testDB)
	vetRepo := repository.NewVeterinarianRepository(testDB)
	prontuarioService := NewProntuarioService(prontuarioRepo, petRepo, vetRepo, testDB)

	owner := &model.User{
		Username:     "owner",
		Email:        "owner@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(owner)

	pet := &model.Pet{
		Name:    "Mimi",
		Breed:   "Siamese",
		Species: "cat",
		OwnerID: &owner.ID,
	}
	testDB.Create(pet)

	vetUser := &model.User{
		Username:     "dr.carlos",
		Email:        "carlos@example.com",
		PasswordHash: "hash",
		Role:         model.RoleVet,
		IsActive:     true,
	}
	testDB.Create(vetUser)

	vet := &model.Veterinarian{
		UserID:   vetUser.ID,
		Name:     "Dr. Carlos",
		CRMV:     "CRMV-RJ 456",
		IsActive: true,
	}
	testDB.Create(vet)

	return prontuarioService, testDB, vetUser, pet, vet
}

func TestProntuarioService_Create_ReportsAllMissingFields(t *testing.T) {
	prontuarioService, _, vetUser, _, _ := setupProntuarioServiceTest(t)

	_, err := prontuarioService.Create(ProntuarioInput{}, vetUser.ID)

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t,
		[]string{"pet_id", "anamnese", "diagnostico", "tratamento"},
		missing.Fields)
}

func TestProntuarioService_Create_DefaultsVetToActingUser(t *testing.T) {
	prontuarioService, _, vetUser, pet, vet := setupProntuarioServiceTest(t)

	prontuario, err := prontuarioService.Create(ProntuarioInput{
		PetID:       pet.ID,
		Anamnese:    "lethargy for two days",
		Diagnostico: "mild dehydration",
		Tratamento:  "fluids and rest",
	}, vetUser.ID)
	require.NoError(t, err)
	require.NotNil(t, prontuario.VetID)
	assert.Equal(t, vet.ID, *prontuario.VetID)
}

func TestProntuarioService_Create_NoVetProfile(t *testing.T) {
	prontuarioService, testDB, _, pet, _ := setupProntuarioServiceTest(t)

	admin := &model.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	testDB.Create(admin)

	// An admin without a veterinarian profile leaves the vet unset
	prontuario, err := prontuarioService.Create(ProntuarioInput{
		PetID:       pet.ID,
		Anamnese:    "a",
		Diagnostico: "b",
		Tratamento:  "c",
	}, admin.ID)
	require.NoError(t, err)
	assert.Nil(t, prontuario.VetID)
}

func TestProntuarioService_Create_LinksAndCompletesScheduling(t *testing.T) {
	prontuarioService, testDB, vetUser, pet, vet := setupProntuarioServiceTest(t)

	scheduling := &model.Scheduling{
		UserID:  *pet.OwnerID,
		PetID:   pet.ID,
		VetID:   &vet.ID,
		Service: model.ServiceVeterinary,
		Time:    "10:00",
		Status:  model.SchedulingStatusConfirmed,
	}
	testDB.Create(scheduling)

	prontuario, err := prontuarioService.Create(ProntuarioInput{
		PetID:        pet.ID,
		SchedulingID: &scheduling.ID,
		Anamnese:     "vomiting",
		Diagnostico:  "hairball",
		Tratamento:   "paste, follow up in a week",
	}, vetUser.ID)
	require.NoError(t, err)

	var linked model.Scheduling
	require.NoError(t, testDB.First(&linked, scheduling.ID).Error)
	assert.Equal(t, model.SchedulingStatusCompleted, linked.Status)
	require.NotNil(t, linked.ProntuarioID)
	assert.Equal(t, prontuario.ID, *linked.ProntuarioID)
}

func TestProntuarioService_Create_PetMismatchLeavesNoRecord(t *testing.T) {
	prontuarioService, testDB, vetUser, pet, vet := setupProntuarioServiceTest(t)

	otherPet := &model.Pet{
		Name:    "Thor",
		Breed:   "Mixed breed",
		Species: "dog",
		OwnerID: pet.OwnerID,
	}
	testDB.Create(otherPet)

	scheduling := &model.Scheduling{
		UserID:  *pet.OwnerID,
		PetID:   otherPet.ID,
		VetID:   &vet.ID,
		Service: model.ServiceVeterinary,
		Time:    "15:00",
		Status:  model.SchedulingStatusScheduled,
	}
	testDB.Create(scheduling)

	_, err := prontuarioService.Create(ProntuarioInput{
		PetID:        pet.ID,
		SchedulingID: &scheduling.ID,
		Anamnese:     "a",
		Diagnostico:  "b",
		Tratamento:   "c",
	}, vetUser.ID)
	assert.ErrorIs(t, err, ErrSchedulingPetMismatch)

	// Nothing was written and the appointment is untouched
	var records int64
	testDB.Model(&model.Prontuario{}).Count(&records)
	assert.Equal(t, int64(0), records)

	var untouched model.Scheduling
	testDB.First(&untouched, scheduling.ID)
	assert.Equal(t, model.SchedulingStatusScheduled, untouched.Status)
	assert.Nil(t, untouched.ProntuarioID)
}

func TestProntuarioService_Create_UnknownScheduling(t *testing.T) {
	prontuarioService, _, vetUser, pet, _ := setupProntuarioServiceTest(t)

	missing := uint(9999)
	_, err := prontuarioService.Create(ProntuarioInput{
		PetID:        pet.ID,
		SchedulingID: &missing,
		Anamnese:     "a",
		Diagnostico:  "b",
		Tratamento:   "c",
	}, vetUser.ID)
	assert.ErrorIs(t, err, ErrSchedulingNotFound)
}

func TestProntuarioService_ListByPet(t *testing.T) {
	prontuarioService, _, vetUser, pet, _ := setupProntuarioServiceTest(t)

	for i := 0; i < 2; i++ {
		_, err := prontuarioService.Create(ProntuarioInput{
			PetID:       pet.ID,
			Anamnese:    "visit",
			Diagnostico: "healthy",
			Tratamento:  "none",
		}, vetUser.ID)
		require.NoError(t, err)
	}

	records, err := prontuarioService.ListByPet(pet.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = prontuarioService.ListByPet(9999)
	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestProntuarioService_Update(t *testing.T) {
	prontuarioService, _, vetUser, pet, _ := setupProntuarioServiceTest(t)

	prontuario, err := prontuarioService.Create(ProntuarioInput{
		PetID:       pet.ID,
		Anamnese:    "initial",
		Diagnostico: "pending exams",
		Tratamento:  "wait",
	}, vetUser.ID)
	require.NoError(t, err)

	updated, err := prontuarioService.Update(prontuario.ID, ProntuarioInput{
		Diagnostico: "confirmed allergy",
	})
	require.NoError(t, err)
	assert.Equal(t, "initial", updated.Anamnese)
	assert.Equal(t, "confirmed allergy", updated.Diagnostico)

	_, err = prontuarioService.Update(9999, ProntuarioInput{Anamnese: "x"})
	assert.ErrorIs(t, err, ErrProntuarioNotFound)
}
