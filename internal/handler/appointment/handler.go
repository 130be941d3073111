package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/handler"
	"github.com/jwalitptl/medrec-api/internal/middleware"
	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/service/appointment"
	"github.com/jwalitptl/medrec-api/internal/service/directory"
)

type Handler struct {
	service   *appointment.Service
	directory *directory.Service
	auth      *middleware.AuthMiddleware
}

func NewHandler(service *appointment.Service, directory *directory.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, directory: directory, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/appointments", h.auth.RequireAuth())
	g.POST("", h.auth.RequireRole(model.RolePatient), h.Book)
	g.GET("", h.List)
	g.PATCH("/:id/status", h.auth.RequireAnyRole(model.RoleDoctor, model.RoleAdmin), h.Transition)
}

// Book creates a pending appointment for the calling patient.
func (h *Handler) Book(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	session := middleware.SessionFrom(c)
	patient, err := h.directory.GetPatientByUser(c.Request.Context(), session.UserID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	apt, err := h.service.Book(c.Request.Context(), appointment.BookInput{
		DoctorID:  req.DoctorID,
		PatientID: patient.ID,
		Date:      req.Date,
		Time:      req.Time,
		Symptoms:  req.Symptoms,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

// List scopes to the caller's own appointments; admins pass doctor_id or
// patient_id explicitly. An optional status query narrows the result, so
// upcoming and history views are filters over one list.
func (h *Handler) List(c *gin.Context) {
	session := middleware.SessionFrom(c)
	ctx := c.Request.Context()

	var appointments []*model.Appointment
	var err error

	switch session.Role {
	case model.RolePatient:
		var patient *model.PatientProfile
		patient, err = h.directory.GetPatientByUser(ctx, session.UserID)
		if err == nil {
			appointments, err = h.service.ListForPatient(ctx, patient.ID)
		}
	case model.RoleDoctor:
		var doctor *model.DoctorProfile
		doctor, err = h.directory.GetDoctorByUser(ctx, session.UserID)
		if err == nil {
			appointments, err = h.service.ListForDoctor(ctx, doctor.ID)
		}
	default:
		if id := c.Query("doctor_id"); id != "" {
			var doctorID uuid.UUID
			doctorID, err = uuid.Parse(id)
			if err != nil {
				c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
				return
			}
			appointments, err = h.service.ListForDoctor(ctx, doctorID)
		} else {
			var patientID uuid.UUID
			raw := c.Query("patient_id")
			if raw == "" {
				c.JSON(http.StatusBadRequest, handler.NewErrorResponse("doctor_id or patient_id is required"))
				return
			}
			patientID, err = uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
				return
			}
			appointments, err = h.service.ListForPatient(ctx, patientID)
		}
	}
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if status := model.AppointmentStatus(c.Query("status")); status != "" {
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown status"))
			return
		}
		filtered := make([]*model.Appointment, 0, len(appointments))
		for _, a := range appointments {
			if a.Status == status {
				filtered = append(filtered, a)
			}
		}
		appointments = filtered
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.TransitionAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	session := middleware.SessionFrom(c)
	apt, err := h.service.Transition(c.Request.Context(), id, req.Status, session.Role)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}
