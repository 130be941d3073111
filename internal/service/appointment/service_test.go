package appointment

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

type fixture struct {
	svc      *Service
	dir      *directory.Service
	doctors  *repotest.DoctorRepo
	patients *repotest.PatientRepo
	doctor   *model.DoctorProfile
	patient  *model.PatientProfile
}

func setup(t *testing.T) *fixture {
	t.Helper()

	doctors := repotest.NewDoctorRepo()
	patients := repotest.NewPatientRepo()
	dir := directory.NewService(doctors, patients)
	svc := NewService(repotest.NewAppointmentRepo(), dir)

	doctor := &model.DoctorProfile{ID: uuid.New(), UserID: uuid.New(), ConsultationFee: 500}
	require.NoError(t, doctors.Create(context.Background(), doctor))

	patient := &model.PatientProfile{ID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, patients.Create(context.Background(), patient))

	return &fixture{svc: svc, dir: dir, doctors: doctors, patients: patients, doctor: doctor, patient: patient}
}

func (f *fixture) book(t *testing.T) *model.Appointment {
	t.Helper()
	apt, err := f.svc.Book(context.Background(), BookInput{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		Date:      "2026-09-10",
		Time:      "10:30",
	})
	require.NoError(t, err)
	return apt
}

func TestBookSnapshotsFee(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	apt := f.book(t)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, 500.0, apt.ConsultationFee)

	// Raising the fee afterwards must not touch the booked appointment.
	require.NoError(t, f.dir.UpdateDoctorFee(ctx, f.doctor.ID, 750))

	got, err := f.svc.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.ConsultationFee)

	// A new booking picks up the new fee.
	second := f.book(t)
	assert.Equal(t, 750.0, second.ConsultationFee)
}

func TestBookUnknownDoctor(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Book(context.Background(), BookInput{
		DoctorID:  uuid.New(),
		PatientID: f.patient.ID,
		Date:      "2026-09-10",
		Time:      "10:30",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestBookUnknownPatient(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Book(context.Background(), BookInput{
		DoctorID:  f.doctor.ID,
		PatientID: uuid.New(),
		Date:      "2026-09-10",
		Time:      "10:30",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestBookMissingDate(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Book(context.Background(), BookInput{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestBookAllowsOverlappingSlots(t *testing.T) {
	// Double-booking the same doctor, date and time is allowed.
	f := setup(t)

	first := f.book(t)
	second := f.book(t)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestTransitionLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	apt := f.book(t)

	got, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusConfirmed, model.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, got.Status)

	got, err = f.svc.Transition(ctx, apt.ID, model.AppointmentStatusCompleted, model.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, got.Status)
}

func TestTransitionIdempotentReapply(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	apt := f.book(t)

	_, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusConfirmed, model.RoleAdmin)
	require.NoError(t, err)

	// Re-applying the current status succeeds without changing anything.
	got, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusConfirmed, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, got.Status)
}

func TestTransitionRejectsInvalidEdges(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// pending -> completed skips confirmation.
	apt := f.book(t)
	_, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusCompleted, model.RoleDoctor)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	// Terminal states have no outgoing edges.
	_, err = f.svc.Transition(ctx, apt.ID, model.AppointmentStatusCancelled, model.RoleDoctor)
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, apt.ID, model.AppointmentStatusConfirmed, model.RoleDoctor)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	second := f.book(t)
	_, err = f.svc.Transition(ctx, second.ID, model.AppointmentStatusConfirmed, model.RoleDoctor)
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, second.ID, model.AppointmentStatusCompleted, model.RoleDoctor)
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, second.ID, model.AppointmentStatusCancelled, model.RoleDoctor)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestTransitionForbiddenForPatients(t *testing.T) {
	f := setup(t)
	apt := f.book(t)

	_, err := f.svc.Transition(context.Background(), apt.ID, model.AppointmentStatusConfirmed, model.RolePatient)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestTransitionUnknownStatus(t *testing.T) {
	f := setup(t)
	apt := f.book(t)

	_, err := f.svc.Transition(context.Background(), apt.ID, model.AppointmentStatus("done"), model.RoleDoctor)
	assert.True(t, apperror.IsValidation(err))
}

func TestTransitionUnknownAppointment(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Transition(context.Background(), uuid.New(), model.AppointmentStatusConfirmed, model.RoleAdmin)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListOrdering(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	book := func(date, tm string) {
		_, err := f.svc.Book(ctx, BookInput{
			DoctorID: f.doctor.ID, PatientID: f.patient.ID, Date: date, Time: tm,
		})
		require.NoError(t, err)
	}

	book("2026-09-12", "09:00")
	book("2026-09-10", "14:00")
	book("2026-09-10", "08:30")

	list, err := f.svc.ListForPatient(ctx, f.patient.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2026-09-10", list[0].Date)
	assert.Equal(t, "08:30", list[0].Time)
	assert.Equal(t, "2026-09-10", list[1].Date)
	assert.Equal(t, "14:00", list[1].Time)
	assert.Equal(t, "2026-09-12", list[2].Date)
}
