package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mindcare-backend/internal/model"
	"mindcare-backend/internal/store"
)

// AdminListPsychologists handles GET /api/admin/psychologists. The
// optional status query filters the moderation queue.
func (h *Handler) AdminListPsychologists(c *gin.Context) {
	status := model.PsychologistStatus(c.Query("status"))
	switch status {
	case "", model.PsychologistPending, model.PsychologistApproved, model.PsychologistRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	list, err := h.store.ListPsychologists(c.Request.Context(), status)
	if err != nil {
		internalError(c, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		out = append(out, gin.H{
			"id":             p.ID,
			"name":           p.User.Name,
			"email":          p.User.Email,
			"specialization": p.Specialization,
			"status":         p.Status,
		})
	}
	c.JSON(http.StatusOK, out)
}

type moderationRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// AdminSetPsychologistStatus handles PATCH /api/admin/psychologists/:id/status.
func (h *Handler) AdminSetPsychologistStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid psychologist ID"})
		return
	}

	var req moderationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be approved or rejected"})
		return
	}

	err = h.store.UpdatePsychologistStatus(c.Request.Context(), id, model.PsychologistStatus(req.Status))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Psychologist not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// AdminSetArticleStatus handles PATCH /api/admin/articles/:id/status.
func (h *Handler) AdminSetArticleStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var req moderationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be approved or rejected"})
		return
	}

	err = h.store.UpdateArticleStatus(c.Request.Context(), id, model.ArticleStatus(req.Status))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// AdminListArticles handles GET /api/admin/articles: the moderation
// queue, optionally filtered by status.
func (h *Handler) AdminListArticles(c *gin.Context) {
	status := model.ArticleStatus(c.Query("status"))
	switch status {
	case "", model.ArticlePending, model.ArticleApproved, model.ArticleRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	list, err := h.store.ListArticles(c.Request.Context(), status)
	if err != nil {
		internalError(c, err)
		return
	}

	out := make([]articleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toArticleResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

// AdminStats handles GET /api/admin/stats.
func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
