package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare-backend/internal/model"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"), time.Hour)
	user := &model.User{ID: 42, Role: model.RolePatient}

	token, err := issuer.Issue(user, time.Now())
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, model.RolePatient, claims.Role)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"), time.Hour)
	other := NewIssuer([]byte("other-secret"), time.Hour)

	token, err := issuer.Issue(&model.User{ID: 1, Role: model.RoleAdmin}, time.Now())
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"), time.Hour)

	token, err := issuer.Issue(&model.User{ID: 1, Role: model.RolePatient}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"), time.Hour)

	_, err := issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
