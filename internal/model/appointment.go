package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// successors is the full transition graph. completed and cancelled are
// terminal and deliberately absent.
var successors = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether target is a valid successor of s.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, next := range successors[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s AppointmentStatus) Terminal() bool {
	return len(successors[s]) == 0 && s.Valid()
}

// Appointment links a doctor and a patient for a dated visit.
// ConsultationFee is snapshotted from the doctor's profile at booking
// time and never rewritten, even if the doctor's fee later changes.
type Appointment struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	DoctorID        uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	PatientID       uuid.UUID         `json:"patient_id" db:"patient_id"`
	Date            string            `json:"date" db:"visit_date"`
	Time            string            `json:"time" db:"visit_time"`
	Symptoms        *string           `json:"symptoms,omitempty" db:"symptoms"`
	ConsultationFee float64           `json:"consultation_fee" db:"consultation_fee"`
	Status          AppointmentStatus `json:"status" db:"status"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
}

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
	Date     string    `json:"date" binding:"required,datetime=2006-01-02"`
	Time     string    `json:"time" binding:"required,datetime=15:04"`
	Symptoms *string   `json:"symptoms"`
}

type TransitionAppointmentRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}
