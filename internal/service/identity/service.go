// Package identity owns login, registration, session restore and logout.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/email"
	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
	"github.com/jwalitptl/medrec-api/pkg/auth"
	"github.com/jwalitptl/medrec-api/pkg/logger"
	"github.com/jwalitptl/medrec-api/pkg/security"
)

const bcryptCost = 12

type Service struct {
	userRepo    repository.UserRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	tokenRepo   repository.TokenRepository
	hasher      security.PasswordHasher
	jwtSvc      auth.JWTService
	tokenExpiry time.Duration
	emailSvc    email.Service
	log         *logger.Logger
}

func NewService(
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService,
	tokenExpiry time.Duration,
	emailSvc email.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		tokenRepo:   tokenRepo,
		hasher:      security.NewBcryptHasher(bcryptCost),
		jwtSvc:      jwtSvc,
		tokenExpiry: tokenExpiry,
		emailSvc:    emailSvc,
		log:         log,
	}
}

// Login resolves the identifier against username or email (exact,
// case-sensitive) and verifies the password. Unknown identifier and
// wrong password both surface the same invalid-credential error so
// callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, identifier, password string) (*model.TokenResponse, error) {
	if identifier == "" || password == "" {
		return nil, apperror.Validationf("", "missing credentials")
	}

	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.log.Debug("login failed: no such identifier")
			return nil, apperror.ErrInvalidCredential
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.log.Debug("login failed: password mismatch")
		return nil, apperror.ErrInvalidCredential
	}

	session := user.Projection()
	token, err := s.jwtSvc.Generate(session)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{AccessToken: token, Session: session}, nil
}

// Register creates the user row, then exactly one role profile row. The
// two inserts are not atomic: when the profile insert fails the user row
// stays behind and the error names it for a compensating delete.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.ErrDuplicateIdentity
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Validationf("password", "%v", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.createProfile(ctx, user, req); err != nil {
		return nil, &apperror.PartialFailureError{
			OrphanUserID: user.ID,
			Step:         "profile creation",
			Err:          err,
		}
	}

	if req.Email != nil {
		if err := s.emailSvc.SendWelcome(ctx, *req.Email, user.Name); err != nil {
			s.log.Warn("failed to send welcome email", "user_id", user.ID.String())
		}
	}

	return user, nil
}

func validateRegistration(req *model.RegisterRequest) error {
	switch {
	case req.Username == "":
		return apperror.Validationf("username", "required")
	case req.Password == "":
		return apperror.Validationf("password", "required")
	case req.Name == "":
		return apperror.Validationf("name", "required")
	}

	switch req.Role {
	case model.RolePatient:
		if req.Age == nil || req.Gender == nil || req.BloodGroup == nil {
			return apperror.Validationf("profile", "age, gender and blood group are required for patients")
		}
		if *req.Age < 0 {
			return apperror.Validationf("age", "must not be negative")
		}
	case model.RoleDoctor:
		if req.ConsultationFee != nil && *req.ConsultationFee < 0 {
			return apperror.Validationf("consultation_fee", "must not be negative")
		}
	case model.RoleAdmin:
		// admins are seeded, not self-registered
		return apperror.ErrForbidden
	default:
		return apperror.Validationf("role", "unknown role %q", req.Role)
	}
	return nil
}

func (s *Service) createProfile(ctx context.Context, user *model.User, req *model.RegisterRequest) error {
	switch user.Role {
	case model.RoleDoctor:
		doctor := &model.DoctorProfile{
			ID:     uuid.New(),
			UserID: user.ID,
		}
		if req.Specialization != nil {
			doctor.Specialization = *req.Specialization
		}
		if req.LicenseNumber != nil {
			doctor.LicenseNumber = *req.LicenseNumber
		}
		if req.ConsultationFee != nil {
			doctor.ConsultationFee = *req.ConsultationFee
		}
		return s.doctorRepo.Create(ctx, doctor)
	case model.RolePatient:
		patient := &model.PatientProfile{
			ID:          uuid.New(),
			UserID:      user.ID,
			Age:         req.Age,
			Gender:      req.Gender,
			BloodGroup:  req.BloodGroup,
			DateOfBirth: req.DateOfBirth,
		}
		return s.patientRepo.Create(ctx, patient)
	}
	return apperror.Validationf("role", "unknown role %q", user.Role)
}

// Restore rebuilds the session from a previously issued token, honoring
// revocation. This is the startup path for clients that persisted a token.
func (s *Service) Restore(ctx context.Context, token string) (*model.Session, error) {
	revoked, err := s.tokenRepo.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperror.ErrInvalidCredential
	}

	session, err := s.jwtSvc.Verify(token)
	if err != nil {
		return nil, apperror.ErrInvalidCredential
	}
	return session, nil
}

// Logout revokes the token synchronously before returning; the session
// is unusable from this call onward.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokenRepo.Revoke(ctx, token, s.tokenExpiry)
}

// ListUsers is the admin account roster, optionally filtered by role.
func (s *Service) ListUsers(ctx context.Context, role model.Role) ([]*model.User, error) {
	if role != "" && !role.Valid() {
		return nil, apperror.Validationf("role", "unknown role %q", role)
	}
	return s.userRepo.List(ctx, role)
}

// DeleteUser removes the role profile first, then the user row, mirroring
// the ownership direction. Admin only.
func (s *Service) DeleteUser(ctx context.Context, actor *model.Session, userID uuid.UUID) error {
	if actor == nil || actor.Role != model.RoleAdmin {
		return apperror.ErrForbidden
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}

	switch user.Role {
	case model.RoleDoctor:
		if err := s.doctorRepo.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
	case model.RolePatient:
		if err := s.patientRepo.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
	}

	return s.userRepo.Delete(ctx, user.ID)
}
