package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/redsoft-clinic/clinicflow/internal/domain/patient"
	"github.com/redsoft-clinic/clinicflow/internal/handler/middleware"
	"github.com/redsoft-clinic/clinicflow/internal/service"
)

type PatientHandler struct {
	patientSvc *service.PatientService
}

func NewPatientHandler(patientSvc *service.PatientService) *PatientHandler {
	return &PatientHandler{patientSvc: patientSvc}
}

type createPatientRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender" binding:"required"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email"`
	City        string `json:"city"`
	Source      string `json:"source"`
	Notes       string `json:"notes"`
}

type patientResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	City        string `json:"city,omitempty"`
	Source      string `json:"source"`
	Status      string `json:"status"`
}

func toPatientResponse(p *patient.Patient) patientResponse {
	resp := patientResponse{
		ID:        p.ID.String(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		FullName:  p.FullName(),
		Gender:    string(p.Gender),
		Phone:     p.Phone,
		Email:     p.Email,
		City:      p.City,
		Source:    string(p.Source),
		Status:    string(p.Status),
	}
	if p.DateOfBirth != nil {
		resp.DateOfBirth = p.DateOfBirth.Format("2006-01-02")
	}
	return resp
}

func (h *PatientHandler) Create(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		d, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date_of_birth: expected YYYY-MM-DD")
			return
		}
		dob = &d
	}

	p, err := h.patientSvc.CreatePatient(c.Request.Context(), &patient.CreatePatientCommand{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      patient.Gender(req.Gender),
		DateOfBirth: dob,
		Phone:       req.Phone,
		Email:       req.Email,
		City:        req.City,
		Source:      patient.Source(req.Source),
		Notes:       req.Notes,
		CreatedBy:   claims.UserID,
	}, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toPatientResponse(p))
}

func (h *PatientHandler) Get(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.patientSvc.GetPatient(c.Request.Context(), id, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toPatientResponse(p))
}

func (h *PatientHandler) List(c *gin.Context) {
	q := &patient.ListPatientsQuery{
		Search:   c.Query("search"),
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
	}
	if raw := c.Query("status"); raw != "" {
		st := patient.Status(raw)
		q.Status = &st
	}
	if raw := c.Query("source"); raw != "" {
		src := patient.Source(raw)
		q.Source = &src
	}

	paged, err := h.patientSvc.ListPatients(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]patientResponse, 0, len(paged.Patients))
	for _, p := range paged.Patients {
		items = append(items, toPatientResponse(p))
	}

	respondOK(c, gin.H{
		"patients":    items,
		"total_count": paged.TotalCount,
		"page":        paged.Page,
		"page_size":   paged.PageSize,
		"total_pages": paged.TotalPages,
	})
}

func (h *PatientHandler) Deactivate(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.patientSvc.DeactivatePatient(c.Request.Context(), id, claims.UserID, string(claims.Role), c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse[any]{Message: "patient deactivated"})
}
