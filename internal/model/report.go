package model

import (
	"time"

	"github.com/google/uuid"
)

// TestReport references an uploaded file in the object store via FileRef
// (the object key). Deleting the report must also release the object.
type TestReport struct {
	ID          uuid.UUID `json:"id" db:"id"`
	DoctorID    uuid.UUID `json:"doctor_id" db:"doctor_id"`
	PatientID   uuid.UUID `json:"patient_id" db:"patient_id"`
	ReportName  string    `json:"report_name" db:"report_name"`
	ReportType  string    `json:"report_type" db:"report_type"`
	TestDate    string    `json:"test_date" db:"test_date"`
	Description *string   `json:"description,omitempty" db:"description"`
	FileRef     string    `json:"file_ref" db:"file_ref"`
	FileURL     string    `json:"file_url,omitempty" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateTestReportRequest struct {
	PatientID   uuid.UUID `form:"patient_id" binding:"required"`
	ReportName  string    `form:"report_name" binding:"required"`
	ReportType  string    `form:"report_type" binding:"required"`
	TestDate    string    `form:"test_date" binding:"required,datetime=2006-01-02"`
	Description *string   `form:"description"`
}
