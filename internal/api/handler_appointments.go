package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mindcare-backend/internal/booking"
	"mindcare-backend/internal/mw"
)

// GetSlots handles GET /api/appointments/slots/:psychologist_id.
func (h *Handler) GetSlots(c *gin.Context) {
	psychologistID, err := strconv.ParseInt(c.Param("psychologist_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid psychologist ID"})
		return
	}

	// A slow database must not hang the response indefinitely.
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.queryTimeout)
	defer cancel()

	avail, err := h.booking.AvailableSlots(ctx, psychologistID)
	if err != nil {
		bookingError(c, err)
		return
	}

	slots := make([]string, 0, len(avail.Slots))
	for _, s := range avail.Slots {
		slots = append(slots, s.Format(time.RFC3339))
	}

	slotsByDate := make(map[string][]string, len(avail.SlotsByDate))
	for key, group := range avail.SlotsByDate {
		formatted := make([]string, 0, len(group))
		for _, s := range group {
			formatted = append(formatted, s.Format(time.RFC3339))
		}
		slotsByDate[key] = formatted
	}

	c.JSON(http.StatusOK, gin.H{
		"slots":       slots,
		"slotsByDate": slotsByDate,
	})
}

type bookRequest struct {
	PsychologistID      int64     `json:"psychologistId" binding:"required"`
	AppointmentDateTime time.Time `json:"appointmentDateTime" binding:"required"`
}

// BookAppointment handles POST /api/appointments.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "psychologistId and appointmentDateTime are required"})
		return
	}

	appt, err := h.booking.Book(c.Request.Context(), booking.Request{
		PsychologistID: req.PsychologistID,
		PatientID:      mw.UserID(c),
		Role:           mw.UserRole(c),
		When:           req.AppointmentDateTime,
	})
	if err != nil {
		bookingError(c, err)
		return
	}

	// Denormalize both parties for the confirmation payload.
	psych, err := h.store.FindPsychologistByID(c.Request.Context(), appt.PsychologistID)
	if err != nil {
		internalError(c, err)
		return
	}
	patient, err := h.store.FindUserByID(c.Request.Context(), appt.PatientID)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":                  appt.ID,
		"appointmentDateTime": appt.AppointmentDateTime.Format(time.RFC3339),
		"status":              appt.Status,
		"psychologist": gin.H{
			"id":             psych.ID,
			"name":           psych.User.Name,
			"email":          psych.User.Email,
			"specialization": psych.Specialization,
		},
		"patient": gin.H{
			"id":    patient.ID,
			"name":  patient.Name,
			"email": patient.Email,
		},
	})
}

// MyAppointments handles GET /api/appointments/my.
func (h *Handler) MyAppointments(c *gin.Context) {
	view, err := h.booking.PatientAppointments(c.Request.Context(), mw.UserID(c))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PsychologistAppointments handles GET /api/appointments/psychologist.
func (h *Handler) PsychologistAppointments(c *gin.Context) {
	view, err := h.booking.PsychologistRoster(c.Request.Context(), mw.UserID(c))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
