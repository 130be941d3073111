package model

import (
	"time"

	"github.com/google/uuid"
)

// DoctorProfile is owned 1:1 by its User and deleted with it.
type DoctorProfile struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Name            string    `json:"name" db:"name"`
	Specialization  string    `json:"specialization" db:"specialization"`
	LicenseNumber   string    `json:"license_number" db:"license_number"`
	ConsultationFee float64   `json:"consultation_fee" db:"consultation_fee"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type UpdateDoctorFeeRequest struct {
	ConsultationFee float64 `json:"consultation_fee" binding:"gte=0"`
}
