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

func setupSchedulingServiceTest(t *testing.T) (SchedulingService, *gorm.DB, *model.User, *model.Pet, *model.Veterinarian) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	schedulingRepo := repository.NewSchedulingRepository(testDB)
	petRepo := repository.NewPetRepository(testDB)
	vetRepo := repository.NewVeterinarianRepository(testDB)
	schedulingService := NewSchedulingService(schedulingRepo, petRepo, vetRepo)

	owner := &model.User{
		Username:     "owner",
		Email:        "owner@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(owner)

	pet := &model.Pet{
		Name:    "Rex",
		Breed:   "Labrador",
		Species: "dog",
		OwnerID: &owner.ID,
	}
	testDB.Create(pet)

	vetUser := &model.User{
		Username:     "dra.ana",
		Email:        "ana@example.com",
		PasswordHash: "hash",
		Role:         model.RoleVet,
		IsActive:     true,
	}
	testDB.Create(vetUser)

	vet := &model.Veterinarian{
		UserID:   vetUser.ID,
		Name:     "Dra. Ana",
		CRMV:     "CRMV-SP 123",
		IsActive: true,
	}
	testDB.Create(vet)

	return schedulingService, testDB, owner, pet, vet
}

func tomorrow() time.Time {
	return time.Now().AddDate(0, 0, 1)
}

func TestSchedulingService_Create_Success(t *testing.T) {
	schedulingService, _, owner, pet, vet := setupSchedulingServiceTest(t)

	scheduling, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceVeterinary,
		Date:    tomorrow(),
		Time:    "14:30",
		Notes:   "annual checkup",
		VetID:   &vet.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, scheduling.ID)
	assert.Equal(t, model.SchedulingStatusScheduled, scheduling.Status)
	assert.Equal(t, model.ServiceVeterinary, scheduling.Service)
	require.NotNil(t, scheduling.VetID)
	assert.Equal(t, vet.ID, *scheduling.VetID)
}

func TestSchedulingService_Create_RejectsPastDate(t *testing.T) {
	schedulingService, _, owner, pet, _ := setupSchedulingServiceTest(t)

	_, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceBath,
		Date:    time.Now().AddDate(0, 0, -1),
		Time:    "10:00",
	})
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestSchedulingService_Create_AllowsToday(t *testing.T) {
	schedulingService, _, owner, pet, _ := setupSchedulingServiceTest(t)

	_, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceBath,
		Date:    time.Now(),
		Time:    "23:59",
	})
	assert.NoError(t, err)
}

func TestSchedulingService_Create_RejectsBadTime(t *testing.T) {
	schedulingService, _, owner, pet, _ := setupSchedulingServiceTest(t)

	for _, bad := range []string{"", "9:00", "25:00", "12:61", "noon"} {
		_, err := schedulingService.Create(owner.ID, SchedulingInput{
			PetID:   pet.ID,
			Service: model.ServiceWalk,
			Date:    tomorrow(),
			Time:    bad,
		})
		assert.ErrorIs(t, err, ErrInvalidTime, "time %q", bad)
	}
}

func TestSchedulingService_Create_RejectsForeignPet(t *testing.T) {
	schedulingService, testDB, _, pet, _ := setupSchedulingServiceTest(t)

	other := &model.User{
		Username:     "intruder",
		Email:        "intruder@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(other)

	_, err := schedulingService.Create(other.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceBath,
		Date:    tomorrow(),
		Time:    "09:00",
	})
	assert.ErrorIs(t, err, ErrPetNotOwned)

	_, err = schedulingService.Create(other.ID, SchedulingInput{
		PetID:   9999,
		Service: model.ServiceBath,
		Date:    tomorrow(),
		Time:    "09:00",
	})
	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestSchedulingService_UpdateStatus_OwnerMayOnlyCancel(t *testing.T) {
	schedulingService, _, owner, pet, _ := setupSchedulingServiceTest(t)

	scheduling, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceHotel,
		Date:    tomorrow(),
		Time:    "08:00",
	})
	require.NoError(t, err)

	_, err = schedulingService.UpdateStatus(scheduling.ID, model.SchedulingStatusConfirmed, owner.ID, false)
	assert.ErrorIs(t, err, ErrSchedulingAccessDenied)

	updated, err := schedulingService.UpdateStatus(scheduling.ID, model.SchedulingStatusCancelled, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.SchedulingStatusCancelled, updated.Status)
}

func TestSchedulingService_UpdateStatus_AdminMaySetAny(t *testing.T) {
	schedulingService, _, owner, pet, _ := setupSchedulingServiceTest(t)

	scheduling, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceVeterinary,
		Date:    tomorrow(),
		Time:    "11:00",
	})
	require.NoError(t, err)

	updated, err := schedulingService.UpdateStatus(scheduling.ID, model.SchedulingStatusConfirmed, 0, true)
	require.NoError(t, err)
	assert.Equal(t, model.SchedulingStatusConfirmed, updated.Status)
}

func TestSchedulingService_AssignedVetAuthorization(t *testing.T) {
	schedulingService, testDB, owner, pet, vet := setupSchedulingServiceTest(t)

	scheduling, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceVeterinary,
		Date:    tomorrow(),
		Time:    "11:00",
		VetID:   &vet.ID,
	})
	require.NoError(t, err)

	// The assigned vet sees the appointment and may move it forward
	got, err := schedulingService.GetByID(scheduling.ID, vet.UserID, false)
	require.NoError(t, err)
	assert.Equal(t, scheduling.ID, got.ID)

	updated, err := schedulingService.UpdateStatus(scheduling.ID, model.SchedulingStatusConfirmed, vet.UserID, false)
	require.NoError(t, err)
	assert.Equal(t, model.SchedulingStatusConfirmed, updated.Status)

	// A different vet has no standing on someone else's appointment
	otherVetUser := &model.User{
		Username:     "dr.bruno",
		Email:        "bruno@example.com",
		PasswordHash: "hash",
		Role:         model.RoleVet,
		IsActive:     true,
	}
	testDB.Create(otherVetUser)
	otherVet := &model.Veterinarian{
		UserID:   otherVetUser.ID,
		Name:     "Dr. Bruno",
		CRMV:     "CRMV-SP 456",
		IsActive: true,
	}
	testDB.Create(otherVet)

	_, err = schedulingService.GetByID(scheduling.ID, otherVetUser.ID, false)
	assert.ErrorIs(t, err, ErrSchedulingAccessDenied)

	_, err = schedulingService.UpdateStatus(scheduling.ID, model.SchedulingStatusCompleted, otherVetUser.ID, false)
	assert.ErrorIs(t, err, ErrSchedulingAccessDenied)
}

func TestSchedulingService_Update_ChangesPet(t *testing.T) {
	schedulingService, testDB, owner, pet, _ := setupSchedulingServiceTest(t)

	secondPet := &model.Pet{
		Name:    "Mia",
		Species: "cat",
		OwnerID: &owner.ID,
	}
	testDB.Create(secondPet)

	stranger := &model.User{
		Username:     "stranger3",
		Email:        "stranger3@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(stranger)
	foreignPet := &model.Pet{
		Name:    "Thor",
		Species: "dog",
		OwnerID: &stranger.ID,
	}
	testDB.Create(foreignPet)

	scheduling, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceBath,
		Date:    tomorrow(),
		Time:    "10:00",
	})
	require.NoError(t, err)

	// Switching to another of the owner's pets works
	updated, err := schedulingService.Update(scheduling.ID, SchedulingInput{PetID: secondPet.ID}, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, secondPet.ID, updated.PetID)

	// Switching to somebody else's pet does not
	_, err = schedulingService.Update(scheduling.ID, SchedulingInput{PetID: foreignPet.ID}, owner.ID, false)
	assert.ErrorIs(t, err, ErrPetNotOwned)
}

func TestSchedulingService_ListForVet(t *testing.T) {
	schedulingService, _, owner, pet, vet := setupSchedulingServiceTest(t)

	assigned, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceVeterinary,
		Date:    tomorrow(),
		Time:    "09:00",
		VetID:   &vet.ID,
	})
	require.NoError(t, err)

	// Unassigned appointment must not show up in the vet's agenda
	_, err = schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceBath,
		Date:    tomorrow(),
		Time:    "10:00",
	})
	require.NoError(t, err)

	agenda, err := schedulingService.ListForVet(vet.UserID, "")
	require.NoError(t, err)
	require.Len(t, agenda, 1)
	assert.Equal(t, assigned.ID, agenda[0].ID)

	// A user without a vet profile has no agenda
	_, err = schedulingService.ListForVet(owner.ID, "")
	assert.ErrorIs(t, err, ErrVetNotFound)
}

func TestSchedulingService_Update_FrozenWhenClosed(t *testing.T) {
	schedulingService, _, owner, pet, _ := setupSchedulingServiceTest(t)

	scheduling, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceBath,
		Date:    tomorrow(),
		Time:    "10:00",
	})
	require.NoError(t, err)

	_, err = schedulingService.UpdateStatus(scheduling.ID, model.SchedulingStatusCancelled, owner.ID, false)
	require.NoError(t, err)

	_, err = schedulingService.Update(scheduling.ID, SchedulingInput{Notes: "too late"}, owner.ID, false)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSchedulingService_Delete_SoftDeletes(t *testing.T) {
	schedulingService, testDB, owner, pet, _ := setupSchedulingServiceTest(t)

	scheduling, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceWalk,
		Date:    tomorrow(),
		Time:    "16:00",
	})
	require.NoError(t, err)

	require.NoError(t, schedulingService.Delete(scheduling.ID, owner.ID, false))

	_, err = schedulingService.GetByID(scheduling.ID, owner.ID, false)
	assert.ErrorIs(t, err, ErrSchedulingNotFound)

	// Row survives as soft-deleted
	var count int64
	testDB.Unscoped().Model(&model.Scheduling{}).
		Where("id = ? AND deleted_at IS NOT NULL", scheduling.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSchedulingService_ListByUser_StatusFilter(t *testing.T) {
	schedulingService, _, owner, pet, _ := setupSchedulingServiceTest(t)

	first, err := schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceBath,
		Date:    tomorrow(),
		Time:    "09:00",
	})
	require.NoError(t, err)
	_, err = schedulingService.Create(owner.ID, SchedulingInput{
		PetID:   pet.ID,
		Service: model.ServiceWalk,
		Date:    tomorrow(),
		Time:    "10:00",
	})
	require.NoError(t, err)

	_, err = schedulingService.UpdateStatus(first.ID, model.SchedulingStatusCancelled, owner.ID, false)
	require.NoError(t, err)

	all, err := schedulingService.ListByUser(owner.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cancelled, err := schedulingService.ListByUser(owner.ID, string(model.SchedulingStatusCancelled))
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.ID, cancelled[0].ID)
}
