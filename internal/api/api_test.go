package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mindcare-backend/config"
	"mindcare-backend/internal/auth"
	"mindcare-backend/internal/booking"
	"mindcare-backend/internal/db"
	"mindcare-backend/internal/markdown"
	"mindcare-backend/internal/model"
	"mindcare-backend/internal/schedule"
	"mindcare-backend/internal/store"
)

// Monday 08:00 UTC, the fixed clock for handler tests.
var testNow = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

type testAPI struct {
	router *gin.Engine
	store  store.Store
	gorm   *gorm.DB
	issuer *auth.Issuer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB))

	appStore := store.NewGormStore(gormDB)
	issuer := auth.NewIssuer([]byte("test-secret"), time.Hour)

	bookingSvc := booking.NewService(
		appStore,
		schedule.DefaultRules(),
		func() time.Time { return testNow },
		nil,
	)

	handler := NewHandler(Options{
		Store:      appStore,
		Booking:    bookingSvc,
		Issuer:     issuer,
		Renderer:   markdown.NewRenderer(),
		Webpush:    &webpush.Options{VAPIDPublicKey: "test-public-key"},
		BcryptCost: bcrypt.MinCost,
	})

	router := NewRouter(handler, &config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	})

	return &testAPI{router: router, store: appStore, gorm: gormDB, issuer: issuer}
}

func (a *testAPI) createUser(t *testing.T, name, email string, role model.Role) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := model.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, a.gorm.Create(&u).Error)
	return u
}

func (a *testAPI) createPsychologist(t *testing.T, email string, status model.PsychologistStatus) model.Psychologist {
	t.Helper()
	u := a.createUser(t, "Dr. "+email, email, model.RolePsychologist)
	p := model.Psychologist{UserID: u.ID, Specialization: "CBT", Status: status}
	require.NoError(t, a.gorm.Create(&p).Error)
	return p
}

func (a *testAPI) token(t *testing.T, u model.User) string {
	t.Helper()
	// Tokens are validated against the real clock, so issue with it.
	token, err := a.issuer.Issue(&u, time.Now())
	require.NoError(t, err)
	return token
}

// do performs a request with an optional JSON body and bearer token.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
