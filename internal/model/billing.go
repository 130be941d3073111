package model

import "github.com/google/uuid"

// ExpenseLine is one prescription row of a patient's expense report with
// its derived total.
type ExpenseLine struct {
	PrescriptionID uuid.UUID `json:"prescription_id"`
	MedicineName   string    `json:"medicine_name"`
	Days           int       `json:"days"`
	CostPerDay     float64   `json:"cost_per_day"`
	Total          float64   `json:"total"`
}

// ExpenseReport aggregates a patient's medical spend. All totals are
// derived on read, never persisted.
type ExpenseReport struct {
	PatientID        uuid.UUID     `json:"patient_id"`
	Medicines        []ExpenseLine `json:"medicines"`
	MedicineCost     float64       `json:"medicine_cost"`
	ConsultationCost float64       `json:"consultation_cost"`
	TotalExpense     float64       `json:"total_expense"`
}
