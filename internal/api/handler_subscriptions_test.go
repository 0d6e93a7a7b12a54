package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare-backend/internal/model"
)

func TestPutSubscription(t *testing.T) {
	a := newTestAPI(t)
	psych := a.createPsychologist(t, "riva@example.com", model.PsychologistApproved)

	var owner model.User
	require.NoError(t, a.gorm.First(&owner, psych.UserID).Error)
	token := a.token(t, owner)

	w := a.do(t, http.MethodPut, "/api/subscriptions", token, map[string]any{
		"endpoint": "https://push.example/ep1",
		"p256dh":   "key",
		"auth":     "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var sub model.PushSubscription
	require.NoError(t, a.gorm.First(&sub, "endpoint = ?", "https://push.example/ep1").Error)
	assert.Equal(t, psych.UserID, sub.UserID)
}

func TestPutSubscription_MissingFields(t *testing.T) {
	a := newTestAPI(t)
	u := a.createUser(t, "Pat", "pat@example.com", model.RolePatient)

	w := a.do(t, http.MethodPut, "/api/subscriptions", a.token(t, u), map[string]any{
		"endpoint": "https://push.example/ep1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSubscription_OnlyOwn(t *testing.T) {
	a := newTestAPI(t)
	owner := a.createUser(t, "Owner", "owner@example.com", model.RolePsychologist)
	other := a.createUser(t, "Other", "other@example.com", model.RolePatient)

	sub := model.PushSubscription{Endpoint: "https://push.example/ep1", P256DH: "k", Auth: "a", UserID: owner.ID}
	require.NoError(t, a.gorm.Create(&sub).Error)

	// A different user deleting the same endpoint is a no-op.
	w := a.do(t, http.MethodDelete, "/api/subscriptions", a.token(t, other), map[string]any{
		"endpoint": "https://push.example/ep1",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	a.gorm.Model(&model.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(1), count)

	w = a.do(t, http.MethodDelete, "/api/subscriptions", a.token(t, owner), map[string]any{
		"endpoint": "https://push.example/ep1",
	})
	require.Equal(t, http.StatusNoContent, w.Code)
	a.gorm.Model(&model.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetVAPIDPublicKey(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodGet, "/api/vapid_public_key", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"public_key":"test-public-key"}`, w.Body.String())
}
