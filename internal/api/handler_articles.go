package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mindcare-backend/internal/model"
	"mindcare-backend/internal/mw"
	"mindcare-backend/internal/store"
)

type articleResponse struct {
	ID        int64               `json:"id"`
	Title     string              `json:"title"`
	HTML      string              `json:"html"`
	Author    string              `json:"author"`
	Status    model.ArticleStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

func toArticleResponse(a model.Article) articleResponse {
	return articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		HTML:      a.HTML,
		Author:    a.Psychologist.User.Name,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}

type createArticleRequest struct {
	Title    string `json:"title" binding:"required"`
	Markdown string `json:"markdown" binding:"required"`
}

// CreateArticle handles POST /api/articles. Only psychologists with a
// profile may publish; new articles await moderation.
func (h *Handler) CreateArticle(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and markdown are required"})
		return
	}

	profile, err := h.authorProfile(c)
	if err != nil {
		return // response already written
	}

	html, err := h.renderer.Render(req.Markdown)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Markdown could not be rendered"})
		return
	}

	article := model.Article{
		PsychologistID: profile.ID,
		Title:          req.Title,
		Markdown:       req.Markdown,
		HTML:           html,
		Status:         model.ArticlePending,
	}
	if err := h.store.CreateArticle(c.Request.Context(), &article); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     article.ID,
		"title":  article.Title,
		"status": article.Status,
	})
}

// ListArticles handles GET /api/articles: approved articles only,
// public and cacheable.
func (h *Handler) ListArticles(c *gin.Context) {
	list, err := h.store.ListArticles(c.Request.Context(), model.ArticleApproved)
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

// GetArticle handles GET /api/articles/:id. Unapproved articles are
// not visible.
func (h *Handler) GetArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	a, err := h.store.FindArticleByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	if a.Status != model.ArticleApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(*a))
}

// MyArticles handles GET /api/my/articles: the author's own articles
// in every moderation state.
func (h *Handler) MyArticles(c *gin.Context) {
	profile, err := h.authorProfile(c)
	if err != nil {
		return
	}

	list, err := h.store.ArticlesByAuthor(c.Request.Context(), profile.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, a := range list {
		out = append(out, gin.H{
			"id":        a.ID,
			"title":     a.Title,
			"status":    a.Status,
			"createdAt": a.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// authorProfile resolves the caller's psychologist profile, writing the
// error response itself when there is none.
func (h *Handler) authorProfile(c *gin.Context) (*model.Psychologist, error) {
	profile, err := h.store.FindPsychologistByUserID(c.Request.Context(), mw.UserID(c))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Psychologist profile not found"})
		return nil, err
	}
	if err != nil {
		internalError(c, err)
		return nil, err
	}
	return profile, nil
}
