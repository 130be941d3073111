package model

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is immutable once created; there is no update operation.
type Prescription struct {
	ID           uuid.UUID `json:"id" db:"id"`
	DoctorID     uuid.UUID `json:"doctor_id" db:"doctor_id"`
	PatientID    uuid.UUID `json:"patient_id" db:"patient_id"`
	MedicineName string    `json:"medicine_name" db:"medicine_name"`
	Dosage       string    `json:"dosage" db:"dosage"`
	Frequency    string    `json:"frequency" db:"frequency"`
	Days         int       `json:"days" db:"days"`
	CostPerDay   float64   `json:"cost_per_day" db:"cost_per_day"`
	Instructions *string   `json:"instructions,omitempty" db:"instructions"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Cost derives the prescription's total. It is never stored.
func (p *Prescription) Cost() float64 {
	return float64(p.Days) * p.CostPerDay
}

type CreatePrescriptionRequest struct {
	PatientID    uuid.UUID `json:"patient_id" binding:"required"`
	MedicineName string    `json:"medicine_name" binding:"required"`
	Dosage       string    `json:"dosage" binding:"required"`
	Frequency    string    `json:"frequency" binding:"required"`
	Days         int       `json:"days" binding:"required,gte=1"`
	CostPerDay   float64   `json:"cost_per_day" binding:"gte=0"`
	Instructions *string   `json:"instructions"`
}
