package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"mindcare-backend/internal/auth"
	"mindcare-backend/internal/booking"
	"mindcare-backend/internal/markdown"
	"mindcare-backend/internal/mw"
	"mindcare-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store        store.Store
	booking      *booking.Service
	issuer       *auth.Issuer
	renderer     *markdown.Renderer
	webpush      *webpush.Options
	bcryptCost   int
	queryTimeout time.Duration
}

// Options bundles the handler dependencies.
type Options struct {
	Store        store.Store
	Booking      *booking.Service
	Issuer       *auth.Issuer
	Renderer     *markdown.Renderer
	Webpush      *webpush.Options
	BcryptCost   int
	QueryTimeout time.Duration
}

// NewHandler creates a new API handler.
func NewHandler(opts Options) *Handler {
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 5 * time.Second
	}
	if opts.BcryptCost <= 0 {
		opts.BcryptCost = 10
	}
	return &Handler{
		store:        opts.Store,
		booking:      opts.Booking,
		issuer:       opts.Issuer,
		renderer:     opts.Renderer,
		webpush:      opts.Webpush,
		bcryptCost:   opts.BcryptCost,
		queryTimeout: opts.QueryTimeout,
	}
}

// bookingError maps engine failures onto the API's status codes. The
// conflict case deliberately answers 400, not 409, with the exact
// message established by the original service.
func bookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidInput),
		errors.Is(err, booking.ErrOffGrid),
		errors.Is(err, booking.ErrPastTimestamp):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrSlotTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "This time slot is already booked"})
	case errors.Is(err, booking.ErrNotPatient):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only patients can book appointments"})
	case errors.Is(err, booking.ErrPsychologistNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Psychologist not found"})
	case errors.Is(err, booking.ErrNoProfile):
		c.JSON(http.StatusNotFound, gin.H{"error": "Psychologist profile not found"})
	default:
		internalError(c, err)
	}
}

// internalError logs the detailed failure server-side and answers with
// a generic message.
func internalError(c *gin.Context, err error) {
	log.Printf("request %s %s failed (request_id=%s): %v",
		c.Request.Method, c.Request.URL.Path, mw.GetRequestID(c), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
