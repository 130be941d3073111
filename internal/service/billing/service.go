// Package billing derives a patient's medical spend from prescriptions
// and completed appointments. Totals are recomputed on every read and
// never persisted.
package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
)

type Service struct {
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
}

func NewService(appointmentRepo repository.AppointmentRepository, prescriptionRepo repository.PrescriptionRepository) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

// PatientMedicineCost sums days * cost_per_day across the patient's
// prescriptions.
func (s *Service) PatientMedicineCost(ctx context.Context, patientID uuid.UUID) (float64, error) {
	prescriptions, err := s.prescriptionRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, p := range prescriptions {
		total += p.Cost()
	}
	return total, nil
}

// PatientConsultationCost sums snapshotted fees of completed appointments
// only. Pending, confirmed and cancelled appointments contribute nothing
// even though a fee was snapshotted at booking.
func (s *Service) PatientConsultationCost(ctx context.Context, patientID uuid.UUID) (float64, error) {
	appointments, err := s.appointmentRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, a := range appointments {
		if a.Status == model.AppointmentStatusCompleted {
			total += a.ConsultationFee
		}
	}
	return total, nil
}

// PatientTotalExpense is always medicine cost plus consultation cost.
func (s *Service) PatientTotalExpense(ctx context.Context, patientID uuid.UUID) (float64, error) {
	medicine, err := s.PatientMedicineCost(ctx, patientID)
	if err != nil {
		return 0, err
	}
	consultation, err := s.PatientConsultationCost(ctx, patientID)
	if err != nil {
		return 0, err
	}
	return medicine + consultation, nil
}

// ExpenseReport assembles the per-line breakdown behind the totals.
func (s *Service) ExpenseReport(ctx context.Context, patientID uuid.UUID) (*model.ExpenseReport, error) {
	prescriptions, err := s.prescriptionRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	report := &model.ExpenseReport{
		PatientID: patientID,
		Medicines: make([]model.ExpenseLine, 0, len(prescriptions)),
	}
	for _, p := range prescriptions {
		report.Medicines = append(report.Medicines, model.ExpenseLine{
			PrescriptionID: p.ID,
			MedicineName:   p.MedicineName,
			Days:           p.Days,
			CostPerDay:     p.CostPerDay,
			Total:          p.Cost(),
		})
		report.MedicineCost += p.Cost()
	}

	consultation, err := s.PatientConsultationCost(ctx, patientID)
	if err != nil {
		return nil, err
	}
	report.ConsultationCost = consultation
	report.TotalExpense = report.MedicineCost + report.ConsultationCost

	return report, nil
}

// DoctorEarnings sums snapshotted fees of the doctor's completed
// appointments.
func (s *Service) DoctorEarnings(ctx context.Context, doctorID uuid.UUID) (float64, error) {
	appointments, err := s.appointmentRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, a := range appointments {
		if a.Status == model.AppointmentStatusCompleted {
			total += a.ConsultationFee
		}
	}
	return total, nil
}
