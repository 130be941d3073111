package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medrec-api/internal/email"
	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository/repotest"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
	"github.com/jwalitptl/medrec-api/pkg/auth"
	"github.com/jwalitptl/medrec-api/pkg/logger"
)

type identityFixture struct {
	svc      *Service
	users    *repotest.UserRepo
	doctors  *repotest.DoctorRepo
	patients *repotest.PatientRepo
	tokens   *repotest.TokenRepo
}

func newFixture(t *testing.T) *identityFixture {
	t.Helper()

	f := &identityFixture{
		users:    repotest.NewUserRepo(),
		doctors:  repotest.NewDoctorRepo(),
		patients: repotest.NewPatientRepo(),
		tokens:   repotest.NewTokenRepo(),
	}
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	f.svc = NewService(
		f.users, f.doctors, f.patients, f.tokens,
		jwtSvc, time.Hour,
		email.NewService(email.Config{}),
		logger.New(nil),
	)
	return f
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func patientRequest(username string) *model.RegisterRequest {
	return &model.RegisterRequest{
		Username:   username,
		Email:      strPtr(username + "@example.com"),
		Password:   "secret123",
		Name:       "Alice Smith",
		Role:       model.RolePatient,
		Age:        intPtr(30),
		Gender:     strPtr("female"),
		BloodGroup: strPtr("O+"),
	}
}

func doctorRequest(username string) *model.RegisterRequest {
	fee := 500.0
	return &model.RegisterRequest{
		Username:        username,
		Email:           strPtr(username + "@example.com"),
		Password:        "secret123",
		Name:            "Dr. Bob Jones",
		Role:            model.RoleDoctor,
		Specialization:  strPtr("cardiology"),
		LicenseNumber:   strPtr("LIC-1001"),
		ConsultationFee: &fee,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.Register(ctx, patientRequest("alice"))
	require.NoError(t, err)
	assert.Equal(t, model.RolePatient, user.Role)

	// The profile row was created alongside the user row.
	profile, err := f.patients.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, *profile.Age)

	// Login by username.
	resp, err := f.svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.Session.UserID)
	assert.Equal(t, model.RolePatient, resp.Session.Role)

	// Login by email resolves the same account.
	resp, err = f.svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.Session.UserID)
}

func TestRegisterAcceptsShortSecret(t *testing.T) {
	// Length guidance in the registration form is advisory only; a
	// five-character secret registers and logs in fine.
	f := newFixture(t)
	ctx := context.Background()

	req := patientRequest("alice")
	req.Password = "pw123"

	user, err := f.svc.Register(ctx, req)
	require.NoError(t, err)

	resp, err := f.svc.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.Session.UserID)
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, patientRequest("alice"))
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, patientRequest("alice"))
	assert.ErrorIs(t, err, apperror.ErrDuplicateIdentity)

	// Same email under a different username is also a duplicate.
	req := doctorRequest("bob")
	req.Email = strPtr("alice@example.com")
	_, err = f.svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperror.ErrDuplicateIdentity)
}

func TestLoginInvalidCredential(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, patientRequest("alice"))
	require.NoError(t, err)

	// Unknown identifier and wrong password are indistinguishable.
	_, unknownErr := f.svc.Login(ctx, "nobody", "secret123")
	_, wrongPwErr := f.svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, unknownErr, apperror.ErrInvalidCredential)
	assert.ErrorIs(t, wrongPwErr, apperror.ErrInvalidCredential)
	assert.Equal(t, unknownErr, wrongPwErr)
}

func TestLoginMissingCredentials(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Login(context.Background(), "", "")
	assert.True(t, apperror.IsValidation(err))
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("patient missing demographics", func(t *testing.T) {
		req := patientRequest("carol")
		req.Age = nil
		_, err := f.svc.Register(ctx, req)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("admin self-registration", func(t *testing.T) {
		req := patientRequest("mallory")
		req.Role = model.RoleAdmin
		_, err := f.svc.Register(ctx, req)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("unknown role", func(t *testing.T) {
		req := patientRequest("dave")
		req.Role = model.Role("nurse")
		_, err := f.svc.Register(ctx, req)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("negative fee", func(t *testing.T) {
		req := doctorRequest("eve")
		fee := -10.0
		req.ConsultationFee = &fee
		_, err := f.svc.Register(ctx, req)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestRegisterPartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.patients.CreateErr = errors.New("disk full")

	_, err := f.svc.Register(ctx, patientRequest("alice"))
	require.Error(t, err)

	var partial *apperror.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.NotEqual(t, uuid.Nil, partial.OrphanUserID)

	// The user row survives so the caller can compensate.
	orphan, err := f.users.Get(ctx, partial.OrphanUserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", orphan.Username)
}

func TestRestoreAndLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, patientRequest("alice"))
	require.NoError(t, err)
	resp, err := f.svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	session, err := f.svc.Restore(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.UserID, session.UserID)
	assert.Equal(t, model.RolePatient, session.Role)

	require.NoError(t, f.svc.Logout(ctx, resp.AccessToken))

	_, err = f.svc.Restore(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidCredential)
}

func TestRestoreGarbageToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Restore(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredential)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.Register(ctx, doctorRequest("bob"))
	require.NoError(t, err)

	admin := &model.Session{UserID: uuid.New(), Role: model.RoleAdmin}

	t.Run("non-admin forbidden", func(t *testing.T) {
		doctor := &model.Session{UserID: uuid.New(), Role: model.RoleDoctor}
		assert.ErrorIs(t, f.svc.DeleteUser(ctx, doctor, user.ID), apperror.ErrForbidden)
		assert.ErrorIs(t, f.svc.DeleteUser(ctx, nil, user.ID), apperror.ErrForbidden)
	})

	t.Run("admin removes profile and user", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteUser(ctx, admin, user.ID))

		_, err := f.users.Get(ctx, user.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		_, err = f.doctors.GetByUserID(ctx, user.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.DeleteUser(ctx, admin, uuid.New()), apperror.ErrNotFound)
	})
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, patientRequest("alice"))
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, doctorRequest("bob"))
	require.NoError(t, err)

	all, err := f.svc.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	doctors, err := f.svc.ListUsers(ctx, model.RoleDoctor)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "bob", doctors[0].Username)

	_, err = f.svc.ListUsers(ctx, model.Role("nurse"))
	assert.True(t, apperror.IsValidation(err))
}
