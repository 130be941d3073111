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

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, doctor_id, patient_id, visit_date, visit_time,
			symptoms, consultation_fee, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	apt.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.DoctorID,
		apt.PatientID,
		apt.Date,
		apt.Time,
		apt.Symptoms,
		apt.ConsultationFee,
		apt.Status,
		apt.CreatedAt,
	)
	if err != nil {
		return apperror.Store("create appointment", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, visit_date, visit_time,
			   symptoms, consultation_fee, status, created_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("appointment")
	}
	if err != nil {
		return nil, apperror.Store("get appointment", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return apperror.Store("update appointment status", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store("update appointment status", err)
	}
	if rows == 0 {
		return apperror.NotFound("appointment")
	}
	return nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return r.list(ctx, "patient_id", patientID)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return r.list(ctx, "doctor_id", doctorID)
}

func (r *appointmentRepository) list(ctx context.Context, column string, id uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, visit_date, visit_time,
			   symptoms, consultation_fee, status, created_at
		FROM appointments
		WHERE ` + column + ` = $1
		ORDER BY visit_date ASC, visit_time ASC, created_at ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, id); err != nil {
		return nil, apperror.Store("list appointments", err)
	}
	return appointments, nil
}
