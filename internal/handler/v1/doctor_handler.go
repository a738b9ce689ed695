package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/redsoft-clinic/clinicflow/internal/domain/doctor"
	"github.com/redsoft-clinic/clinicflow/internal/handler/middleware"
	"github.com/redsoft-clinic/clinicflow/internal/service"
)

type DoctorHandler struct {
	doctorSvc  *service.DoctorService
	bookingSvc *service.BookingService
}

func NewDoctorHandler(doctorSvc *service.DoctorService, bookingSvc *service.BookingService) *DoctorHandler {
	return &DoctorHandler{doctorSvc: doctorSvc, bookingSvc: bookingSvc}
}

type createDoctorRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Center    string `json:"center" binding:"required"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"required,email"`
}

type doctorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Center    string `json:"center"`
	Specialty string `json:"specialty,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

func toDoctorResponse(d *doctor.Doctor) doctorResponse {
	return doctorResponse{
		ID:        d.ID.String(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		FullName:  d.FullName(),
		Center:    d.Center,
		Specialty: d.Specialty,
		Phone:     d.Phone,
		Email:     d.Email,
		Status:    string(d.Status),
	}
}

func (h *DoctorHandler) Create(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctorSvc.CreateDoctor(c.Request.Context(), &doctor.CreateDoctorCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Center:    req.Center,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedBy: claims.UserID,
	}, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toDoctorResponse(d))
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.doctorSvc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toDoctorResponse(d))
}

func (h *DoctorHandler) List(c *gin.Context) {
	q := &doctor.ListDoctorsQuery{
		Center:   c.Query("center"),
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
	}
	if raw := c.Query("status"); raw != "" {
		st := doctor.Status(raw)
		q.Status = &st
	}

	paged, err := h.doctorSvc.ListDoctors(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]doctorResponse, 0, len(paged.Doctors))
	for _, d := range paged.Doctors {
		items = append(items, toDoctorResponse(d))
	}

	respondOK(c, gin.H{
		"doctors":     items,
		"total_count": paged.TotalCount,
		"page":        paged.Page,
		"page_size":   paged.PageSize,
		"total_pages": paged.TotalPages,
	})
}

func (h *DoctorHandler) Deactivate(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.doctorSvc.DeactivateDoctor(c.Request.Context(), id, claims.UserID, string(claims.Role), c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse[any]{Message: "doctor deactivated"})
}

type availableSlotResponse struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	TimeSlot  string `json:"time_slot"`
	Mode      string `json:"mode"`
	Remaining int    `json:"remaining"`
}

func toSlotResponses(slots []service.AvailableSlot) []availableSlotResponse {
	out := make([]availableSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, availableSlotResponse{
			Date:      s.Entry.Date.Format("2006-01-02"),
			Weekday:   s.Entry.Weekday,
			TimeSlot:  s.Entry.TimeSlot,
			Mode:      string(s.Entry.Mode),
			Remaining: s.Remaining,
		})
	}
	return out
}

// Slots is the doctor-first discovery endpoint: every open slot from today
// onward plus date bounds for the booking UI's date picker.
func (h *DoctorHandler) Slots(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	avail, err := h.bookingSvc.SlotsForDoctor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"slots": toSlotResponses(avail.Slots)}
	if !avail.FirstDate.IsZero() {
		resp["first_date"] = avail.FirstDate.Format("2006-01-02")
		resp["last_date"] = avail.LastDate.Format("2006-01-02")
	}

	respondOK(c, resp)
}
