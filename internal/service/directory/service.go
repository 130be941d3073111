// Package directory resolves doctor and patient profiles and the weak
// doctor-patient assignment. Assignment scopes default worklists only;
// it never restricts which doctors a patient may see.
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

const (
	feeCacheTTL     = 1 * time.Minute
	feeCacheCleanup = 5 * time.Minute
)

type Service struct {
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	feeCache    *cache.Cache
}

func NewService(doctorRepo repository.DoctorRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		feeCache:    cache.New(feeCacheTTL, feeCacheCleanup),
	}
}

func feeKey(doctorID uuid.UUID) string {
	return "fee:" + doctorID.String()
}

// ResolveDoctorFee returns the doctor's current consultation fee. The
// cache only bounds lookup load; booking still snapshots the value it
// resolves and fee updates invalidate the entry.
func (s *Service) ResolveDoctorFee(ctx context.Context, doctorID uuid.UUID) (float64, error) {
	if fee, ok := s.feeCache.Get(feeKey(doctorID)); ok {
		return fee.(float64), nil
	}

	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return 0, err
	}

	s.feeCache.SetDefault(feeKey(doctorID), doctor.ConsultationFee)
	return doctor.ConsultationFee, nil
}

// UpdateDoctorFee changes the doctor's fee for future bookings. Existing
// appointments keep their snapshotted fee.
func (s *Service) UpdateDoctorFee(ctx context.Context, doctorID uuid.UUID, fee float64) error {
	if fee < 0 {
		return apperror.Validationf("consultation_fee", "must not be negative")
	}
	if err := s.doctorRepo.UpdateFee(ctx, doctorID, fee); err != nil {
		return err
	}
	s.feeCache.Delete(feeKey(doctorID))
	return nil
}

// ResolveAssignedDoctor returns the patient's assigned doctor, or nil
// when the patient is unassigned.
func (s *Service) ResolveAssignedDoctor(ctx context.Context, patientID uuid.UUID) (*model.DoctorProfile, error) {
	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient.AssignedDoctorID == nil {
		return nil, nil
	}

	doctor, err := s.doctorRepo.Get(ctx, *patient.AssignedDoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assigned doctor: %w", err)
	}
	return doctor, nil
}

// AssignDoctor points the patient's worklist assignment at the doctor.
// A nil doctorID clears the assignment.
func (s *Service) AssignDoctor(ctx context.Context, patientID uuid.UUID, doctorID *uuid.UUID) error {
	if doctorID != nil {
		if _, err := s.doctorRepo.Get(ctx, *doctorID); err != nil {
			return err
		}
	}
	return s.patientRepo.Assign(ctx, patientID, doctorID)
}

func (s *Service) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*model.DoctorProfile, error) {
	return s.doctorRepo.Get(ctx, doctorID)
}

func (s *Service) GetDoctorByUser(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	return s.doctorRepo.GetByUserID(ctx, userID)
}

func (s *Service) GetPatient(ctx context.Context, patientID uuid.UUID) (*model.PatientProfile, error) {
	return s.patientRepo.Get(ctx, patientID)
}

func (s *Service) GetPatientByUser(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	return s.patientRepo.GetByUserID(ctx, userID)
}

func (s *Service) ListAllDoctors(ctx context.Context) ([]*model.DoctorProfile, error) {
	return s.doctorRepo.List(ctx)
}

func (s *Service) ListAllPatients(ctx context.Context) ([]*model.PatientProfile, error) {
	return s.patientRepo.List(ctx)
}

// ListAssignedPatients is the doctor's default "my patients" worklist.
func (s *Service) ListAssignedPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientProfile, error) {
	return s.patientRepo.ListByAssignedDoctor(ctx, doctorID)
}
