package report

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/medrec-api/internal/handler"
	"github.com/jwalitptl/medrec-api/internal/middleware"
	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/service/directory"
	"github.com/jwalitptl/medrec-api/internal/service/report"
)

const maxReportFileSize = 10 << 20 // 10MB

type Handler struct {
	service   *report.Service
	directory *directory.Service
	auth      *middleware.AuthMiddleware
}

func NewHandler(service *report.Service, directory *directory.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, directory: directory, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/reports", h.auth.RequireAuth())
	g.POST("", h.auth.RequireRole(model.RoleDoctor), h.Create)
	g.GET("", h.List)
	g.DELETE("/:id", h.auth.RequireAnyRole(model.RoleDoctor, model.RoleAdmin), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateTestReportRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("report file is required"))
		return
	}
	if fileHeader.Size > maxReportFileSize {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("report file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read report file"))
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read report file"))
		return
	}

	session := middleware.SessionFrom(c)
	doctor, err := h.directory.GetDoctorByUser(c.Request.Context(), session.UserID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), report.CreateInput{
		DoctorID:    doctor.ID,
		PatientID:   req.PatientID,
		ReportName:  req.ReportName,
		ReportType:  req.ReportType,
		TestDate:    req.TestDate,
		Description: req.Description,
		FileName:    fileHeader.Filename,
		FileBytes:   fileBytes,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(r))
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
		reports, err := h.service.ListForPatient(ctx, patient.ID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(reports))
	case model.RoleDoctor:
		doctor, err := h.directory.GetDoctorByUser(ctx, session.UserID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		reports, err := h.service.ListForDoctor(ctx, doctor.ID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(reports))
	default:
		patientID, err := uuid.Parse(c.Query("patient_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("patient_id is required"))
			return
		}
		reports, err := h.service.ListForPatient(ctx, patientID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(reports))
	}
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid report ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
