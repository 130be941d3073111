package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

const patientColumns = `
	p.id, p.user_id, u.name AS name, p.age, p.gender, p.blood_group,
	p.date_of_birth, p.assigned_doctor_id
`

func (r *patientRepository) Create(ctx context.Context, patient *model.PatientProfile) error {
	query := `
		INSERT INTO patient_profiles (id, user_id, age, gender, blood_group, date_of_birth, assigned_doctor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.UserID,
		patient.Age,
		patient.Gender,
		patient.BloodGroup,
		patient.DateOfBirth,
		patient.AssignedDoctorID,
	)
	if err != nil {
		return apperror.Store("create patient profile", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patient_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`
	var patient model.PatientProfile
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("patient")
	}
	if err != nil {
		return nil, apperror.Store("get patient profile", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patient_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`
	var patient model.PatientProfile
	err := r.db.GetContext(ctx, &patient, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("patient")
	}
	if err != nil {
		return nil, apperror.Store("get patient profile by user", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.PatientProfile, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patient_profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY u.name ASC
	`
	var patients []*model.PatientProfile
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, apperror.Store("list patient profiles", err)
	}
	return patients, nil
}

func (r *patientRepository) ListByAssignedDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientProfile, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patient_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.assigned_doctor_id = $1
		ORDER BY u.name ASC
	`
	var patients []*model.PatientProfile
	if err := r.db.SelectContext(ctx, &patients, query, doctorID); err != nil {
		return nil, apperror.Store("list assigned patients", err)
	}
	return patients, nil
}

func (r *patientRepository) Assign(ctx context.Context, patientID uuid.UUID, doctorID *uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE patient_profiles SET assigned_doctor_id = $1 WHERE id = $2`, doctorID, patientID)
	if err != nil {
		return apperror.Store("assign doctor", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store("assign doctor", err)
	}
	if rows == 0 {
		return apperror.NotFound("patient")
	}
	return nil
}

func (r *patientRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM patient_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return apperror.Store("delete patient profile", err)
	}
	return nil
}
