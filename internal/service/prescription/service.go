// Package prescription creates and lists prescriptions. A prescription
// is immutable once written; its total cost is derived, never stored.
package prescription

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
	"github.com/jwalitptl/medrec-api/internal/service/directory"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

type Service struct {
	repo      repository.PrescriptionRepository
	directory *directory.Service
}

func NewService(repo repository.PrescriptionRepository, directory *directory.Service) *Service {
	return &Service{repo: repo, directory: directory}
}

type CreateInput struct {
	DoctorID     uuid.UUID
	PatientID    uuid.UUID
	MedicineName string
	Dosage       string
	Frequency    string
	Days         int
	CostPerDay   float64
	Instructions *string
}

// Create validates the referenced doctor and patient exist before the
// insert; there is no constraint system underneath to catch a bad id.
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Prescription, error) {
	switch {
	case input.MedicineName == "":
		return nil, apperror.Validationf("medicine_name", "required")
	case input.Days < 1:
		return nil, apperror.Validationf("days", "must be at least 1")
	case input.CostPerDay < 0:
		return nil, apperror.Validationf("cost_per_day", "must not be negative")
	}

	if _, err := s.directory.GetDoctor(ctx, input.DoctorID); err != nil {
		return nil, err
	}
	if _, err := s.directory.GetPatient(ctx, input.PatientID); err != nil {
		return nil, err
	}

	p := &model.Prescription{
		DoctorID:     input.DoctorID,
		PatientID:    input.PatientID,
		MedicineName: input.MedicineName,
		Dosage:       input.Dosage,
		Frequency:    input.Frequency,
		Days:         input.Days,
		CostPerDay:   input.CostPerDay,
		Instructions: input.Instructions,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Prescription, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}
