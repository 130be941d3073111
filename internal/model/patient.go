package model

import (
	"github.com/google/uuid"
)

// PatientProfile is owned 1:1 by its User. AssignedDoctorID is a weak,
// nullable reference used only to scope default worklists; it never
// restricts which doctors a patient can interact with.
type PatientProfile struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	Name             string     `json:"name" db:"name"`
	Age              *int       `json:"age,omitempty" db:"age"`
	Gender           *string    `json:"gender,omitempty" db:"gender"`
	BloodGroup       *string    `json:"blood_group,omitempty" db:"blood_group"`
	DateOfBirth      *string    `json:"date_of_birth,omitempty" db:"date_of_birth"`
	AssignedDoctorID *uuid.UUID `json:"assigned_doctor_id,omitempty" db:"assigned_doctor_id"`
}

type AssignDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
}
