package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mindcare-backend/internal/model"
	"mindcare-backend/internal/store"
)

// psychologistResponse is the public directory entry for a profile.
type psychologistResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Specialization  string `json:"specialization"`
	Bio             string `json:"bio"`
	ExperienceYears int    `json:"experienceYears"`
	PricePerHour    int    `json:"pricePerHour"`
}

func toPsychologistResponse(p model.Psychologist) psychologistResponse {
	return psychologistResponse{
		ID:              p.ID,
		Name:            p.User.Name,
		Specialization:  p.Specialization,
		Bio:             p.Bio,
		ExperienceYears: p.ExperienceYears,
		PricePerHour:    p.PricePerHour,
	}
}

// ListPsychologists handles GET /api/psychologists: the approved
// directory, public and cacheable.
func (h *Handler) ListPsychologists(c *gin.Context) {
	list, err := h.store.ListPsychologists(c.Request.Context(), model.PsychologistApproved)
	if err != nil {
		internalError(c, err)
		return
	}

	out := make([]psychologistResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPsychologistResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// GetPsychologist handles GET /api/psychologists/:id. Profiles that are
// not approved are indistinguishable from absent ones.
func (h *Handler) GetPsychologist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid psychologist ID"})
		return
	}

	p, err := h.store.FindPsychologistByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Psychologist not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	if p.Status != model.PsychologistApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Psychologist not found"})
		return
	}

	c.JSON(http.StatusOK, toPsychologistResponse(*p))
}
