// Package appointment owns the appointment lifecycle: booking with a fee
// snapshot and the pending/confirmed/completed/cancelled state machine.
package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
	"github.com/jwalitptl/medrec-api/internal/service/directory"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

type Service struct {
	repo      repository.AppointmentRepository
	directory *directory.Service
}

func NewService(repo repository.AppointmentRepository, directory *directory.Service) *Service {
	return &Service{repo: repo, directory: directory}
}

type BookInput struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      string
	Time      string
	Symptoms  *string
}

// Book creates a pending appointment and snapshots the doctor's current
// consultation fee onto it. The snapshot never changes afterwards, even
// if the doctor's fee does.
func (s *Service) Book(ctx context.Context, input BookInput) (*model.Appointment, error) {
	if input.Date == "" || input.Time == "" {
		return nil, apperror.Validationf("date", "date and time are required")
	}

	fee, err := s.directory.ResolveDoctorFee(ctx, input.DoctorID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("doctor %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if _, err := s.directory.GetPatient(ctx, input.PatientID); err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		DoctorID:        input.DoctorID,
		PatientID:       input.PatientID,
		Date:            input.Date,
		Time:            input.Time,
		Symptoms:        input.Symptoms,
		ConsultationFee: fee,
		Status:          model.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// Transition moves an appointment along the lifecycle graph. Re-applying
// the current status is a no-op success, mirroring action buttons that
// are disabled once satisfied rather than rejected. Patients can book
// appointments but never transition them.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, target model.AppointmentStatus, actor model.Role) (*model.Appointment, error) {
	if !target.Valid() {
		return nil, apperror.Validationf("status", "unknown status %q", target)
	}

	if actor != model.RoleDoctor && actor != model.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if apt.Status == target {
		return apt, nil
	}

	if !apt.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%s to %s: %w", apt.Status, target, apperror.ErrInvalidTransition)
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	apt.Status = target
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

// ListForPatient returns the patient's appointments in ascending date order.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// ListForDoctor returns the doctor's appointments in ascending date order.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}
