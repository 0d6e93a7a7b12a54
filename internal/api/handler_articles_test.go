package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare-backend/internal/model"
)

func (a *testAPI) psychToken(t *testing.T, psych model.Psychologist) string {
	t.Helper()
	var u model.User
	require.NoError(t, a.gorm.First(&u, psych.UserID).Error)
	return a.token(t, u)
}

func TestCreateArticle(t *testing.T) {
	a := newTestAPI(t)
	psych := a.createPsychologist(t, "riva@example.com", model.PsychologistApproved)

	w := a.do(t, http.MethodPost, "/api/articles", a.psychToken(t, psych), map[string]any{
		"title":    "Coping with anxiety",
		"markdown": "# Coping\n\nBreathe *slowly*.",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "pending", decodeBody(t, w)["status"])

	var article model.Article
	require.NoError(t, a.gorm.First(&article).Error)
	assert.Contains(t, article.HTML, "<em>slowly</em>")
	assert.Equal(t, model.ArticlePending, article.Status)
}

func TestCreateArticle_PatientForbidden(t *testing.T) {
	a := newTestAPI(t)
	patient := a.createUser(t, "Pat", "pat@example.com", model.RolePatient)

	w := a.do(t, http.MethodPost, "/api/articles", a.token(t, patient), map[string]any{
		"title":    "x",
		"markdown": "y",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListArticles_ApprovedOnly(t *testing.T) {
	a := newTestAPI(t)
	psych := a.createPsychologist(t, "riva@example.com", model.PsychologistApproved)

	approved := model.Article{PsychologistID: psych.ID, Title: "Visible", Markdown: "m", HTML: "<p>m</p>", Status: model.ArticleApproved}
	pending := model.Article{PsychologistID: psych.ID, Title: "Hidden", Markdown: "m", HTML: "<p>m</p>", Status: model.ArticlePending}
	require.NoError(t, a.gorm.Create(&approved).Error)
	require.NoError(t, a.gorm.Create(&pending).Error)

	w := a.do(t, http.MethodGet, "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Visible")
	assert.NotContains(t, body, "Hidden")

	// Pending article detail is indistinguishable from absent.
	detail := a.do(t, http.MethodGet, fmt.Sprintf("/api/articles/%d", pending.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, detail.Code)
}

func TestMyArticles_IncludesAllStates(t *testing.T) {
	a := newTestAPI(t)
	psych := a.createPsychologist(t, "riva@example.com", model.PsychologistApproved)

	for _, st := range []model.ArticleStatus{model.ArticleApproved, model.ArticlePending, model.ArticleRejected} {
		art := model.Article{PsychologistID: psych.ID, Title: string(st), Markdown: "m", HTML: "<p>m</p>", Status: st}
		require.NoError(t, a.gorm.Create(&art).Error)
	}

	w := a.do(t, http.MethodGet, "/api/my/articles", a.psychToken(t, psych), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 3)
}
