package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository/repotest"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

func seed(t *testing.T) (*Service, *repotest.DoctorRepo, *repotest.PatientRepo, *model.DoctorProfile, *model.PatientProfile) {
	t.Helper()

	doctors := repotest.NewDoctorRepo()
	patients := repotest.NewPatientRepo()
	svc := NewService(doctors, patients)

	doctor := &model.DoctorProfile{ID: uuid.New(), UserID: uuid.New(), Name: "Dr. Jones", ConsultationFee: 500}
	require.NoError(t, doctors.Create(context.Background(), doctor))

	patient := &model.PatientProfile{ID: uuid.New(), UserID: uuid.New(), Name: "Alice"}
	require.NoError(t, patients.Create(context.Background(), patient))

	return svc, doctors, patients, doctor, patient
}

func TestResolveDoctorFeeCaches(t *testing.T) {
	svc, doctors, _, doctor, _ := seed(t)
	ctx := context.Background()

	fee, err := svc.ResolveDoctorFee(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, fee)

	// A direct repo write bypasses invalidation; the cached value wins
	// until the TTL runs out.
	require.NoError(t, doctors.UpdateFee(ctx, doctor.ID, 999))
	fee, err = svc.ResolveDoctorFee(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, fee)
}

func TestUpdateDoctorFeeInvalidatesCache(t *testing.T) {
	svc, _, _, doctor, _ := seed(t)
	ctx := context.Background()

	_, err := svc.ResolveDoctorFee(ctx, doctor.ID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateDoctorFee(ctx, doctor.ID, 750))

	fee, err := svc.ResolveDoctorFee(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 750.0, fee)
}

func TestUpdateDoctorFeeValidation(t *testing.T) {
	svc, _, _, doctor, _ := seed(t)

	err := svc.UpdateDoctorFee(context.Background(), doctor.ID, -1)
	assert.True(t, apperror.IsValidation(err))

	err = svc.UpdateDoctorFee(context.Background(), uuid.New(), 100)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestResolveDoctorFeeUnknownDoctor(t *testing.T) {
	svc, _, _, _, _ := seed(t)

	_, err := svc.ResolveDoctorFee(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAssignDoctor(t *testing.T) {
	svc, _, _, doctor, patient := seed(t)
	ctx := context.Background()

	// Unassigned patients resolve to nil without error.
	got, err := svc.ResolveAssignedDoctor(ctx, patient.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, svc.AssignDoctor(ctx, patient.ID, &doctor.ID))

	got, err = svc.ResolveAssignedDoctor(ctx, patient.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, doctor.ID, got.ID)

	// Clearing the assignment.
	require.NoError(t, svc.AssignDoctor(ctx, patient.ID, nil))
	got, err = svc.ResolveAssignedDoctor(ctx, patient.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAssignDoctorUnknownTargets(t *testing.T) {
	svc, _, _, doctor, patient := seed(t)
	ctx := context.Background()

	unknown := uuid.New()
	assert.ErrorIs(t, svc.AssignDoctor(ctx, patient.ID, &unknown), apperror.ErrNotFound)
	assert.ErrorIs(t, svc.AssignDoctor(ctx, uuid.New(), &doctor.ID), apperror.ErrNotFound)
}

func TestListAssignedPatients(t *testing.T) {
	svc, _, patients, doctor, patient := seed(t)
	ctx := context.Background()

	other := &model.PatientProfile{ID: uuid.New(), UserID: uuid.New(), Name: "Bob"}
	require.NoError(t, patients.Create(ctx, other))

	require.NoError(t, svc.AssignDoctor(ctx, patient.ID, &doctor.ID))

	list, err := svc.ListAssignedPatients(ctx, doctor.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, patient.ID, list[0].ID)
}
