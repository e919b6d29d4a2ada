package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability   *ucAppointment.GetAvailability
	createBooking  *ucAppointment.CreateBooking
	updateStatus   *ucAppointment.UpdateAppointmentStatus
	listForClient  *ucAppointment.ListClientAppointments
	barberSchedule *ucAppointment.ListBarberSchedule
	log            *zap.Logger
}

func NewAppointmentHandler(
	availability *ucAppointment.GetAvailability,
	createBooking *ucAppointment.CreateBooking,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	listForClient *ucAppointment.ListClientAppointments,
	barberSchedule *ucAppointment.ListBarberSchedule,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability:   availability,
		createBooking:  createBooking,
		updateStatus:   updateStatus,
		listForClient:  listForClient,
		barberSchedule: barberSchedule,
		log:            log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID uint   `json:"serviceId"`
	BarberID  uint   `json:"barberId"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Notes     string `json:"notes" binding:"max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	serviceID, ok1 := parseOptionalID(c.Query("serviceId"))
	barberID, ok2 := parseOptionalID(c.Query("barberId"))
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_params", "serviceId and barberId must be positive integers.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			Date:      strings.TrimSpace(c.Query("date")),
			ServiceID: serviceID,
			BarberID:  barberID,
		},
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	summary, err := h.createBooking.Execute(
		c.Request.Context(),
		ucAppointment.CreateBookingInput{
			Client:    identity,
			ServiceID: req.ServiceID,
			BarberID:  req.BarberID,
			Date:      req.Date,
			TimeSlot:  req.TimeSlot,
			Notes:     req.Notes,
		},
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, summary)
}

// ======================================================
// LISTINGS
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	list, err := h.listForClient.Execute(c.Request.Context(), identity.ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) BarberSchedule(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.BadRequest(c, "missing_params", "date is required.")
		return
	}

	list, err := h.barberSchedule.Execute(c.Request.Context(), identity.ID, date)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		Actor:         identity,
		AppointmentID: id,
		Status:        req.Status,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"id":     ap.ID,
		"status": ap.Status,
	})
}

// ======================================================
// HELPERS
// ======================================================

func parseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// parseOptionalID treats an empty value as zero so the use case reports it as missing.
func parseOptionalID(raw string) (uint, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, true
	}
	return parseID(raw)
}
