package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/redsoft-clinic/clinicflow/internal/domain/schedule"
	"github.com/redsoft-clinic/clinicflow/internal/handler/middleware"
	"github.com/redsoft-clinic/clinicflow/internal/service"
)

type ScheduleHandler struct {
	scheduleSvc *service.ScheduleService
	bookingSvc  *service.BookingService
}

func NewScheduleHandler(scheduleSvc *service.ScheduleService, bookingSvc *service.BookingService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc, bookingSvc: bookingSvc}
}

type generateScheduleRequest struct {
	FromDate        string   `json:"from_date" binding:"required"`
	ToDate          string   `json:"to_date" binding:"required"`
	FromSlot        string   `json:"from_slot" binding:"required"`
	ToSlot          string   `json:"to_slot" binding:"required"`
	Weekdays        []string `json:"weekdays" binding:"required"`
	Mode            string   `json:"mode" binding:"required"`
	CapacityPerSlot int      `json:"capacity_per_slot"`
}

type scheduleEntryResponse struct {
	ID       string `json:"id"`
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	TimeSlot string `json:"time_slot"`
	Mode     string `json:"mode"`
	Capacity int    `json:"capacity"`
}

func toEntryResponse(e *schedule.Entry) scheduleEntryResponse {
	return scheduleEntryResponse{
		ID:       e.ID.String(),
		DoctorID: e.DoctorID.String(),
		Date:     e.Date.Format("2006-01-02"),
		Weekday:  e.Weekday,
		TimeSlot: e.TimeSlot,
		Mode:     string(e.Mode),
		Capacity: e.Capacity,
	}
}

func toEntryResponses(entries []*schedule.Entry) []scheduleEntryResponse {
	out := make([]scheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

// Generate expands an availability rule into schedule entries for a doctor,
// replacing whatever the same scope held before.
func (h *ScheduleHandler) Generate(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	doctorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req generateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	fromDate, ok := parseDate(c, req.FromDate)
	if !ok {
		return
	}
	toDate, ok := parseDate(c, req.ToDate)
	if !ok {
		return
	}

	var weekdays schedule.WeekdaySet
	for _, name := range req.Weekdays {
		day, err := schedule.ParseWeekday(name)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		weekdays[day] = true
	}

	capacity := req.CapacityPerSlot
	if capacity == 0 {
		capacity = 1
	}

	rule := &schedule.AvailabilityRule{
		DoctorID:        doctorID,
		FromDate:        fromDate,
		ToDate:          toDate,
		FromSlot:        req.FromSlot,
		ToSlot:          req.ToSlot,
		ActiveWeekdays:  weekdays,
		Mode:            schedule.Mode(req.Mode),
		CapacityPerSlot: capacity,
	}

	entries, err := h.scheduleSvc.GenerateSlots(c.Request.Context(), rule, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, gin.H{
		"entries": toEntryResponses(entries),
		"count":   len(entries),
	})
}

func (h *ScheduleHandler) ListForDoctor(c *gin.Context) {
	doctorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	from, ok := parseQueryDate(c, "from")
	if !ok {
		return
	}
	to, ok := parseQueryDate(c, "to")
	if !ok {
		return
	}

	var fromT, toT = timeOrZero(from), timeOrZero(to)
	entries, err := h.scheduleSvc.ListByDoctor(c.Request.Context(), doctorID, fromT, toT, parseQueryInt(c, "limit", 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{
		"entries": toEntryResponses(entries),
		"count":   len(entries),
	})
}

// DeleteRange is the staff bulk cleanup: removes a doctor's entries between
// two dates inclusive.
func (h *ScheduleHandler) DeleteRange(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	doctorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" || toRaw == "" {
		respondError(c, http.StatusBadRequest, "from and to query parameters are required")
		return
	}
	from, ok := parseDate(c, fromRaw)
	if !ok {
		return
	}
	to, ok := parseDate(c, toRaw)
	if !ok {
		return
	}

	deleted, err := h.scheduleSvc.DeleteRange(c.Request.Context(), doctorID, from, to, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": deleted})
}

// DoctorsForDate is the date-first discovery endpoint: which doctors still
// have an open slot on a given day.
func (h *ScheduleHandler) DoctorsForDate(c *gin.Context) {
	date, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	doctors, err := h.bookingSvc.DoctorsForDate(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]doctorResponse, 0, len(doctors))
	for _, d := range doctors {
		items = append(items, toDoctorResponse(d))
	}

	respondOK(c, gin.H{"doctors": items})
}

// SlotOptions narrows to the final bookable slot list once doctor, date, and
// mode are all chosen.
func (h *ScheduleHandler) SlotOptions(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Query("doctor_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid doctor_id: must be a valid UUID")
		return
	}

	dateRaw := c.Query("date")
	if dateRaw == "" {
		respondError(c, http.StatusBadRequest, "date query parameter is required")
		return
	}
	date, ok := parseDate(c, dateRaw)
	if !ok {
		return
	}

	mode := schedule.Mode(c.Query("mode"))
	if !mode.IsValid() {
		respondError(c, http.StatusBadRequest, schedule.ErrUnknownMode.Error())
		return
	}

	slots, err := h.bookingSvc.SlotOptions(c.Request.Context(), doctorID, date, mode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"slots": toSlotResponses(slots)})
}

// Catalog exposes the canonical half-hour slot table for schedule forms.
func (h *ScheduleHandler) Catalog(c *gin.Context) {
	respondOK(c, gin.H{"slots": schedule.Catalog()})
}
