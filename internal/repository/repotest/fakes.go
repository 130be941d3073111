// Package repotest provides in-memory repository fakes for service tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

type UserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User

	// CreateErr forces the next Create to fail.
	CreateErr error
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperror.NotFound("user")
}

func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == identifier {
			cp := *u
			return &cp, nil
		}
	}
	for _, u := range r.users {
		if u.Email != nil && *u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username string, email *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
		if email != nil && u.Email != nil && *u.Email == *email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) List(ctx context.Context, role model.Role) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperror.NotFound("user")
	}
	delete(r.users, id)
	return nil
}

type DoctorRepo struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]*model.DoctorProfile

	CreateErr error
}

func NewDoctorRepo() *DoctorRepo {
	return &DoctorRepo{doctors: make(map[uuid.UUID]*model.DoctorProfile)}
}

func (r *DoctorRepo) Create(ctx context.Context, doctor *model.DoctorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	cp := *doctor
	r.doctors[doctor.ID] = &cp
	return nil
}

func (r *DoctorRepo) Get(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.doctors[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, apperror.NotFound("doctor")
}

func (r *DoctorRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.UserID == userID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("doctor")
}

func (r *DoctorRepo) List(ctx context.Context) ([]*model.DoctorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.DoctorProfile
	for _, d := range r.doctors {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DoctorRepo) UpdateFee(ctx context.Context, id uuid.UUID, fee float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return apperror.NotFound("doctor")
	}
	d.ConsultationFee = fee
	return nil
}

func (r *DoctorRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, d := range r.doctors {
		if d.UserID == userID {
			delete(r.doctors, id)
		}
	}
	return nil
}

type PatientRepo struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*model.PatientProfile

	CreateErr error
}

func NewPatientRepo() *PatientRepo {
	return &PatientRepo{patients: make(map[uuid.UUID]*model.PatientProfile)}
}

func (r *PatientRepo) Create(ctx context.Context, patient *model.PatientProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	cp := *patient
	r.patients[patient.ID] = &cp
	return nil
}

func (r *PatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patients[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperror.NotFound("patient")
}

func (r *PatientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("patient")
}

func (r *PatientRepo) List(ctx context.Context) ([]*model.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.PatientProfile
	for _, p := range r.patients {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PatientRepo) ListByAssignedDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.PatientProfile
	for _, p := range r.patients {
		if p.AssignedDoctorID != nil && *p.AssignedDoctorID == doctorID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PatientRepo) Assign(ctx context.Context, patientID uuid.UUID, doctorID *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[patientID]
	if !ok {
		return apperror.NotFound("patient")
	}
	p.AssignedDoctorID = doctorID
	return nil
}

func (r *PatientRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.patients {
		if p.UserID == userID {
			delete(r.patients, id)
		}
	}
	return nil
}

type AppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*model.Appointment
}

func NewAppointmentRepo() *AppointmentRepo {
	return &AppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *AppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	apt.CreatedAt = time.Now()
	cp := *apt
	r.appointments[apt.ID] = &cp
	return nil
}

func (r *AppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.appointments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperror.NotFound("appointment")
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return apperror.NotFound("appointment")
	}
	a.Status = status
	return nil
}

func (r *AppointmentRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return r.list(func(a *model.Appointment) bool { return a.PatientID == patientID })
}

func (r *AppointmentRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return r.list(func(a *model.Appointment) bool { return a.DoctorID == doctorID })
}

func (r *AppointmentRepo) list(match func(*model.Appointment) bool) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Appointment
	for _, a := range r.appointments {
		if match(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type PrescriptionRepo struct {
	mu            sync.Mutex
	prescriptions map[uuid.UUID]*model.Prescription
}

func NewPrescriptionRepo() *PrescriptionRepo {
	return &PrescriptionRepo{prescriptions: make(map[uuid.UUID]*model.Prescription)}
}

func (r *PrescriptionRepo) Create(ctx context.Context, p *model.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	cp := *p
	r.prescriptions[p.ID] = &cp
	return nil
}

func (r *PrescriptionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	return r.list(func(p *model.Prescription) bool { return p.PatientID == patientID })
}

func (r *PrescriptionRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Prescription, error) {
	return r.list(func(p *model.Prescription) bool { return p.DoctorID == doctorID })
}

func (r *PrescriptionRepo) list(match func(*model.Prescription) bool) ([]*model.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Prescription
	for _, p := range r.prescriptions {
		if match(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type TokenRepo struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func NewTokenRepo() *TokenRepo {
	return &TokenRepo{revoked: make(map[string]bool)}
}

func (r *TokenRepo) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = true
	return nil
}

func (r *TokenRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revoked[token], nil
}

type ReportRepo struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*model.TestReport
}

func NewReportRepo() *ReportRepo {
	return &ReportRepo{reports: make(map[uuid.UUID]*model.TestReport)}
}

func (r *ReportRepo) Create(ctx context.Context, report *model.TestReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = time.Now()
	cp := *report
	r.reports[report.ID] = &cp
	return nil
}

func (r *ReportRepo) Get(ctx context.Context, id uuid.UUID) (*model.TestReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rep, ok := r.reports[id]; ok {
		cp := *rep
		return &cp, nil
	}
	return nil, apperror.NotFound("report")
}

func (r *ReportRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TestReport, error) {
	return r.list(func(rep *model.TestReport) bool { return rep.PatientID == patientID })
}

func (r *ReportRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.TestReport, error) {
	return r.list(func(rep *model.TestReport) bool { return rep.DoctorID == doctorID })
}

func (r *ReportRepo) list(match func(*model.TestReport) bool) ([]*model.TestReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.TestReport
	for _, rep := range r.reports {
		if match(rep) {
			cp := *rep
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ReportRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[id]; !ok {
		return apperror.NotFound("report")
	}
	delete(r.reports, id)
	return nil
}
