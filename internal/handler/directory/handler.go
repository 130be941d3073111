package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/handler"
	"github.com/jwalitptl/medrec-api/internal/middleware"
	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/service/directory"
)

type Handler struct {
	service *directory.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *directory.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors", h.auth.RequireAuth())
	doctors.GET("", h.ListDoctors)
	doctors.PATCH("/:id/fee", h.auth.RequireAnyRole(model.RoleDoctor, model.RoleAdmin), h.UpdateFee)
	doctors.GET("/:id/patients", h.auth.RequireAnyRole(model.RoleDoctor, model.RoleAdmin), h.ListAssignedPatients)

	patients := r.Group("/patients", h.auth.RequireAuth())
	patients.GET("", h.ListPatients)
	patients.GET("/:id/doctor", h.AssignedDoctor)
	patients.PATCH("/:id/assign", h.auth.RequireRole(model.RoleAdmin), h.AssignDoctor)
}

// ListDoctors is global for every role: booking and prescribing may
// cross the assignment boundary.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListAllDoctors(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListAllPatients(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) ListAssignedPatients(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	patients, err := h.service.ListAssignedPatients(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) AssignedDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	doctor, err := h.service.ResolveAssignedDoctor(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) AssignDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.AssignDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.AssignDoctor(c.Request.Context(), id, &req.DoctorID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// UpdateFee changes the doctor's fee for future bookings only; existing
// appointments keep their snapshot.
func (h *Handler) UpdateFee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.UpdateDoctorFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	session := middleware.SessionFrom(c)
	if session.Role == model.RoleDoctor {
		doctor, err := h.service.GetDoctorByUser(c.Request.Context(), session.UserID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		if doctor.ID != id {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("doctors may only update their own fee"))
			return
		}
	}

	if err := h.service.UpdateDoctorFee(c.Request.Context(), id, req.ConsultationFee); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
