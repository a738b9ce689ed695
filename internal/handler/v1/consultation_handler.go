package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/redsoft-clinic/clinicflow/internal/domain/consultation"
	"github.com/redsoft-clinic/clinicflow/internal/domain/schedule"
	"github.com/redsoft-clinic/clinicflow/internal/handler/middleware"
	"github.com/redsoft-clinic/clinicflow/internal/service"
)

type ConsultationHandler struct {
	bookingSvc *service.BookingService
}

func NewConsultationHandler(bookingSvc *service.BookingService) *ConsultationHandler {
	return &ConsultationHandler{bookingSvc: bookingSvc}
}

type bookConsultationRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
	DoctorID  string `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"time_slot" binding:"required"`
	Mode      string `json:"mode" binding:"required"`
	Complaint string `json:"complaint"`
	Notes     string `json:"notes"`
}

type consultationResponse struct {
	ID                 string `json:"id"`
	PatientID          string `json:"patient_id"`
	DoctorID           string `json:"doctor_id"`
	Date               string `json:"date"`
	TimeSlot           string `json:"time_slot"`
	Mode               string `json:"mode"`
	Status             string `json:"status"`
	Complaint          string `json:"complaint,omitempty"`
	Notes              string `json:"notes,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

func toConsultationResponse(c *consultation.Consultation) consultationResponse {
	return consultationResponse{
		ID:                 c.ID.String(),
		PatientID:          c.PatientID.String(),
		DoctorID:           c.DoctorID.String(),
		Date:               c.Date.Format("2006-01-02"),
		TimeSlot:           c.TimeSlot,
		Mode:               string(c.Mode),
		Status:             string(c.Status),
		Complaint:          c.Complaint,
		Notes:              c.Notes,
		CancellationReason: c.CancellationReason,
	}
}

func (h *ConsultationHandler) Book(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req bookConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid patient_id: must be a valid UUID")
		return
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid doctor_id: must be a valid UUID")
		return
	}
	date, ok := parseDate(c, req.Date)
	if !ok {
		return
	}

	visit, err := h.bookingSvc.BookConsultation(c.Request.Context(), &consultation.BookConsultationCommand{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		TimeSlot:  req.TimeSlot,
		Mode:      schedule.Mode(req.Mode),
		Complaint: req.Complaint,
		Notes:     req.Notes,
		CreatedBy: claims.UserID,
	}, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toConsultationResponse(visit))
}

func (h *ConsultationHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	visit, err := h.bookingSvc.GetConsultation(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toConsultationResponse(visit))
}

func (h *ConsultationHandler) List(c *gin.Context) {
	q := &consultation.ListConsultationsQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
	}

	if raw := c.Query("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid patient_id: must be a valid UUID")
			return
		}
		q.PatientID = &id
	}
	if raw := c.Query("doctor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid doctor_id: must be a valid UUID")
			return
		}
		q.DoctorID = &id
	}
	if raw := c.Query("status"); raw != "" {
		st := consultation.Status(raw)
		q.Status = &st
	}
	if raw := c.Query("mode"); raw != "" {
		m := schedule.Mode(raw)
		q.Mode = &m
	}

	var ok bool
	if q.DateFrom, ok = parseQueryDate(c, "date_from"); !ok {
		return
	}
	if q.DateTo, ok = parseQueryDate(c, "date_to"); !ok {
		return
	}

	paged, err := h.bookingSvc.ListConsultations(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]consultationResponse, 0, len(paged.Consultations))
	for _, visit := range paged.Consultations {
		items = append(items, toConsultationResponse(visit))
	}

	respondOK(c, gin.H{
		"consultations": items,
		"total_count":   paged.TotalCount,
		"page":          paged.Page,
		"page_size":     paged.PageSize,
		"total_pages":   paged.TotalPages,
	})
}

type cancelConsultationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *ConsultationHandler) Cancel(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req cancelConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	visit, err := h.bookingSvc.CancelConsultation(c.Request.Context(), id, &consultation.CancelConsultationCommand{
		Reason:      req.Reason,
		CancelledBy: claims.UserID,
	}, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toConsultationResponse(visit))
}

func (h *ConsultationHandler) Confirm(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	visit, err := h.bookingSvc.ConfirmConsultation(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toConsultationResponse(visit))
}

func (h *ConsultationHandler) Complete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	visit, err := h.bookingSvc.CompleteConsultation(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toConsultationResponse(visit))
}
