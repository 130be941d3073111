package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByIdentifier matches username first, then email, exact equality.
	GetByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username string, email *string) (bool, error)
	List(ctx context.Context, role model.Role) ([]*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.DoctorProfile) error
	Get(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
	List(ctx context.Context) ([]*model.DoctorProfile, error)
	UpdateFee(ctx context.Context, id uuid.UUID, fee float64) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.PatientProfile) error
	Get(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error)
	List(ctx context.Context) ([]*model.PatientProfile, error)
	ListByAssignedDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientProfile, error)
	Assign(ctx context.Context, patientID uuid.UUID, doctorID *uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// UpdateStatus is the only write after creation; the fee snapshot is
	// never touched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *model.Prescription) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Prescription, error)
}

type ReportRepository interface {
	Create(ctx context.Context, r *model.TestReport) error
	Get(ctx context.Context, id uuid.UUID) (*model.TestReport, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TestReport, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.TestReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenRepository tracks revoked session tokens so logout is effective
// before the JWT expires.
type TokenRepository interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
