package expense

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/handler"
	"github.com/jwalitptl/medrec-api/internal/middleware"
	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/service/billing"
	"github.com/jwalitptl/medrec-api/internal/service/directory"
)

type Handler struct {
	service   *billing.Service
	directory *directory.Service
	auth      *middleware.AuthMiddleware
}

func NewHandler(service *billing.Service, directory *directory.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, directory: directory, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/expenses", h.auth.RequireAuth())
	g.GET("/me", h.auth.RequireRole(model.RolePatient), h.MyExpenses)
	g.GET("/patients/:id", h.auth.RequireAnyRole(model.RoleDoctor, model.RoleAdmin), h.PatientExpenses)
	g.GET("/earnings", h.auth.RequireRole(model.RoleDoctor), h.MyEarnings)
}

func (h *Handler) MyExpenses(c *gin.Context) {
	session := middleware.SessionFrom(c)
	patient, err := h.directory.GetPatientByUser(c.Request.Context(), session.UserID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	report, err := h.service.ExpenseReport(c.Request.Context(), patient.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(report))
}

func (h *Handler) PatientExpenses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	report, err := h.service.ExpenseReport(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(report))
}

func (h *Handler) MyEarnings(c *gin.Context) {
	session := middleware.SessionFrom(c)
	doctor, err := h.directory.GetDoctorByUser(c.Request.Context(), session.UserID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	earnings, err := h.service.DoctorEarnings(c.Request.Context(), doctor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"earnings": earnings}))
}
