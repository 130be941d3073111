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

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

const doctorColumns = `
	d.id, d.user_id, u.name AS name, d.specialization, d.license_number,
	d.consultation_fee, d.created_at
`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.DoctorProfile) error {
	query := `
		INSERT INTO doctor_profiles (id, user_id, specialization, license_number, consultation_fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	doctor.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.UserID,
		doctor.Specialization,
		doctor.LicenseNumber,
		doctor.ConsultationFee,
		doctor.CreatedAt,
	)
	if err != nil {
		return apperror.Store("create doctor profile", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctor_profiles d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1
	`
	var doctor model.DoctorProfile
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("doctor")
	}
	if err != nil {
		return nil, apperror.Store("get doctor profile", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctor_profiles d
		JOIN users u ON u.id = d.user_id
		WHERE d.user_id = $1
	`
	var doctor model.DoctorProfile
	err := r.db.GetContext(ctx, &doctor, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("doctor")
	}
	if err != nil {
		return nil, apperror.Store("get doctor profile by user", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.DoctorProfile, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctor_profiles d
		JOIN users u ON u.id = d.user_id
		ORDER BY u.name ASC
	`
	var doctors []*model.DoctorProfile
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, apperror.Store("list doctor profiles", err)
	}
	return doctors, nil
}

func (r *doctorRepository) UpdateFee(ctx context.Context, id uuid.UUID, fee float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE doctor_profiles SET consultation_fee = $1 WHERE id = $2`, fee, id)
	if err != nil {
		return apperror.Store("update doctor fee", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store("update doctor fee", err)
	}
	if rows == 0 {
		return apperror.NotFound("doctor")
	}
	return nil
}

func (r *doctorRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM doctor_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return apperror.Store("delete doctor profile", err)
	}
	return nil
}
