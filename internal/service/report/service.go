// Package report manages test reports and their uploaded files in the
// object store.
package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
	"github.com/jwalitptl/medrec-api/internal/service/directory"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
	"github.com/jwalitptl/medrec-api/pkg/objectstore"
)

type Service struct {
	repo      repository.ReportRepository
	store     objectstore.Store
	directory *directory.Service
}

func NewService(repo repository.ReportRepository, store objectstore.Store, directory *directory.Service) *Service {
	return &Service{repo: repo, store: store, directory: directory}
}

type CreateInput struct {
	DoctorID    uuid.UUID
	PatientID   uuid.UUID
	ReportName  string
	ReportType  string
	TestDate    string
	Description *string
	FileName    string
	FileBytes   []byte
	ContentType string
}

// Create uploads the file first, then inserts the row. An upload with no
// row is cheaper to leak than a row pointing at nothing.
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.TestReport, error) {
	switch {
	case input.ReportName == "":
		return nil, apperror.Validationf("report_name", "required")
	case len(input.FileBytes) == 0:
		return nil, apperror.Validationf("file", "required")
	}

	if _, err := s.directory.GetDoctor(ctx, input.DoctorID); err != nil {
		return nil, err
	}
	if _, err := s.directory.GetPatient(ctx, input.PatientID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/%s/%s-%s", input.PatientID, uuid.New(), input.FileName)
	url, err := s.store.Put(ctx, key, input.FileBytes, input.ContentType)
	if err != nil {
		return nil, apperror.Store("upload report file", err)
	}

	r := &model.TestReport{
		DoctorID:    input.DoctorID,
		PatientID:   input.PatientID,
		ReportName:  input.ReportName,
		ReportType:  input.ReportType,
		TestDate:    input.TestDate,
		Description: input.Description,
		FileRef:     key,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	r.FileURL = url
	return r, nil
}

// Delete removes the row, then releases the referenced object. The row
// deletion wins: a release failure surfaces but leaves nothing pointing
// at the object.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.Remove(ctx, r.FileRef); err != nil {
		return apperror.Store("release report file", err)
	}
	return nil
}

func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TestReport, error) {
	reports, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	s.attachURLs(reports)
	return reports, nil
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.TestReport, error) {
	reports, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	s.attachURLs(reports)
	return reports, nil
}

func (s *Service) attachURLs(reports []*model.TestReport) {
	for _, r := range reports {
		r.FileURL = s.store.URL(r.FileRef)
	}
}
