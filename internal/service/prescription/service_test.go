package prescription

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository/repotest"
	"github.com/jwalitptl/medrec-api/internal/service/directory"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

func prescriptionFixture(t *testing.T) (*Service, *model.DoctorProfile, *model.PatientProfile) {
	t.Helper()

	doctors := repotest.NewDoctorRepo()
	patients := repotest.NewPatientRepo()
	svc := NewService(repotest.NewPrescriptionRepo(), directory.NewService(doctors, patients))

	doctor := &model.DoctorProfile{ID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, doctors.Create(context.Background(), doctor))
	patient := &model.PatientProfile{ID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, patients.Create(context.Background(), patient))

	return svc, doctor, patient
}

func TestCreatePrescription(t *testing.T) {
	svc, doctor, patient := prescriptionFixture(t)

	p, err := svc.Create(context.Background(), CreateInput{
		DoctorID:     doctor.ID,
		PatientID:    patient.ID,
		MedicineName: "Paracetamol",
		Dosage:       "500mg",
		Frequency:    "twice daily",
		Days:         5,
		CostPerDay:   10,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, 50.0, p.Cost())
}

func TestCreatePrescriptionValidation(t *testing.T) {
	svc, doctor, patient := prescriptionFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing medicine", CreateInput{DoctorID: doctor.ID, PatientID: patient.ID, Days: 5}},
		{"zero days", CreateInput{DoctorID: doctor.ID, PatientID: patient.ID, MedicineName: "X", Days: 0}},
		{"negative cost", CreateInput{DoctorID: doctor.ID, PatientID: patient.ID, MedicineName: "X", Days: 1, CostPerDay: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestCreatePrescriptionUnknownReferences(t *testing.T) {
	svc, doctor, patient := prescriptionFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{
		DoctorID: uuid.New(), PatientID: patient.ID, MedicineName: "X", Days: 1,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Create(ctx, CreateInput{
		DoctorID: doctor.ID, PatientID: uuid.New(), MedicineName: "X", Days: 1,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	svc, doctor, patient := prescriptionFixture(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second"} {
		_, err := svc.Create(ctx, CreateInput{
			DoctorID: doctor.ID, PatientID: patient.ID, MedicineName: name, Days: 1, CostPerDay: 1,
		})
		require.NoError(t, err)
	}

	list, err := svc.ListForPatient(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].MedicineName)

	byDoctor, err := svc.ListForDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)
}
