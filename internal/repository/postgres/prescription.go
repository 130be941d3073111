package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, doctor_id, patient_id, medicine_name, dosage, frequency,
			days, cost_per_day, instructions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.DoctorID,
		p.PatientID,
		p.MedicineName,
		p.Dosage,
		p.Frequency,
		p.Days,
		p.CostPerDay,
		p.Instructions,
		p.CreatedAt,
	)
	if err != nil {
		return apperror.Store("create prescription", err)
	}
	return nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	return r.list(ctx, "patient_id", patientID)
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Prescription, error) {
	return r.list(ctx, "doctor_id", doctorID)
}

func (r *prescriptionRepository) list(ctx context.Context, column string, id uuid.UUID) ([]*model.Prescription, error) {
	query := `
		SELECT id, doctor_id, patient_id, medicine_name, dosage, frequency,
			   days, cost_per_day, instructions, created_at
		FROM prescriptions
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC
	`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, id); err != nil {
		return nil, apperror.Store("list prescriptions", err)
	}
	return prescriptions, nil
}
