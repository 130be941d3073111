package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/handler"
	"github.com/jwalitptl/medrec-api/internal/middleware"
	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/service/directory"
	"github.com/jwalitptl/medrec-api/internal/service/prescription"
)

type Handler struct {
	service   *prescription.Service
	directory *directory.Service
	auth      *middleware.AuthMiddleware
}

func NewHandler(service *prescription.Service, directory *directory.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, directory: directory, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/prescriptions", h.auth.RequireAuth())
	g.POST("", h.auth.RequireRole(model.RoleDoctor), h.Create)
	g.GET("", h.List)
}

// Create writes a prescription from the calling doctor. Prescribing is
// not limited to the doctor's assigned roster.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	session := middleware.SessionFrom(c)
	doctor, err := h.directory.GetDoctorByUser(c.Request.Context(), session.UserID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), prescription.CreateInput{
		DoctorID:     doctor.ID,
		PatientID:    req.PatientID,
		MedicineName: req.MedicineName,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Days:         req.Days,
		CostPerDay:   req.CostPerDay,
		Instructions: req.Instructions,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) List(c *gin.Context) {
	session := middleware.SessionFrom(c)
	ctx := c.Request.Context()

	switch session.Role {
	case model.RolePatient:
		patient, err := h.directory.GetPatientByUser(ctx, session.UserID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		prescriptions, err := h.service.ListForPatient(ctx, patient.ID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
	case model.RoleDoctor:
		doctor, err := h.directory.GetDoctorByUser(ctx, session.UserID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		prescriptions, err := h.service.ListForDoctor(ctx, doctor.ID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
	default:
		patientID, err := uuid.Parse(c.Query("patient_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("patient_id is required"))
			return
		}
		prescriptions, err := h.service.ListForPatient(ctx, patientID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
	}
}
