package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.TestReport) error {
	query := `
		INSERT INTO test_reports (
			id, doctor_id, patient_id, report_name, report_type,
			test_date, description, file_ref, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.DoctorID,
		report.PatientID,
		report.ReportName,
		report.ReportType,
		report.TestDate,
		report.Description,
		report.FileRef,
		report.CreatedAt,
	)
	if err != nil {
		return apperror.Store("create test report", err)
	}
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id uuid.UUID) (*model.TestReport, error) {
	query := `
		SELECT id, doctor_id, patient_id, report_name, report_type,
			   test_date, description, file_ref, created_at
		FROM test_reports
		WHERE id = $1
	`
	var report model.TestReport
	err := r.db.GetContext(ctx, &report, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("test report")
	}
	if err != nil {
		return nil, apperror.Store("get test report", err)
	}
	return &report, nil
}

func (r *reportRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TestReport, error) {
	return r.list(ctx, "patient_id", patientID)
}

func (r *reportRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.TestReport, error) {
	return r.list(ctx, "doctor_id", doctorID)
}

func (r *reportRepository) list(ctx context.Context, column string, id uuid.UUID) ([]*model.TestReport, error) {
	query := `
		SELECT id, doctor_id, patient_id, report_name, report_type,
			   test_date, description, file_ref, created_at
		FROM test_reports
		WHERE ` + column + ` = $1
		ORDER BY test_date DESC, created_at DESC
	`
	var reports []*model.TestReport
	if err := r.db.SelectContext(ctx, &reports, query, id); err != nil {
		return nil, apperror.Store("list test reports", err)
	}
	return reports, nil
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM test_reports WHERE id = $1`, id)
	if err != nil {
		return apperror.Store("delete test report", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store("delete test report", err)
	}
	if rows == 0 {
		return apperror.NotFound("test report")
	}
	return nil
}
