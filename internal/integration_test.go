package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mindcare-backend/config"
	"mindcare-backend/internal/api"
	"mindcare-backend/internal/auth"
	"mindcare-backend/internal/booking"
	"mindcare-backend/internal/db"
	"mindcare-backend/internal/markdown"
	"mindcare-backend/internal/model"
	"mindcare-backend/internal/schedule"
	"mindcare-backend/internal/store"
)

type recordingNotifier struct {
	ids []int64
}

func (n *recordingNotifier) Dispatch(appointmentID int64) {
	n.ids = append(n.ids, appointmentID)
}

// TestBookingLifecycle walks the whole flow over HTTP: registration,
// admin approval, slot listing, booking, and both appointment views,
// verifying database state at each step.
func TestBookingLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Monday 08:00 UTC. The first bookable slot is 09:00 the same day.
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(testDB))

	appStore := store.NewGormStore(testDB)
	issuer := auth.NewIssuer([]byte("integration-secret"), time.Hour)
	notifier := &recordingNotifier{}

	bookingSvc := booking.NewService(
		appStore,
		schedule.DefaultRules(),
		func() time.Time { return now },
		notifier,
	)

	handler := api.NewHandler(api.Options{
		Store:      appStore,
		Booking:    bookingSvc,
		Issuer:     issuer,
		Renderer:   markdown.NewRenderer(),
		Webpush:    &webpush.Options{VAPIDPublicKey: "test-key"},
		BcryptCost: bcrypt.MinCost,
	})
	router := api.NewRouter(handler, &config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	})

	do := func(method, path, token string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req, err := http.NewRequest(method, path, &buf)
		require.NoError(t, err)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}
	decode := func(w *httptest.ResponseRecorder) map[string]any {
		var out map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	// Admin accounts are provisioned out of band, never via register.
	adminUser := model.User{Name: "Admin", Email: "admin@mindcare.local", PasswordHash: "x", Role: model.RoleAdmin}
	require.NoError(t, testDB.Create(&adminUser).Error)
	adminToken, err := issuer.Issue(&adminUser, time.Now())
	require.NoError(t, err)

	var patientToken, psychToken string
	var psychologistID int64

	t.Run("psychologist registers and starts pending", func(t *testing.T) {
		w := do(http.MethodPost, "/api/auth/register", "", map[string]any{
			"name":           "Dr. Riva",
			"email":          "riva@example.com",
			"password":       "password123",
			"role":           "psychologist",
			"specialization": "CBT",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		psychToken = decode(w)["token"].(string)

		var profile model.Psychologist
		require.NoError(t, testDB.Where("specialization = ?", "CBT").First(&profile).Error)
		assert.Equal(t, model.PsychologistPending, profile.Status)
		psychologistID = profile.ID

		// Pending profiles are invisible in the public directory.
		list := do(http.MethodGet, "/api/psychologists", "", nil)
		require.Equal(t, http.StatusOK, list.Code)
		assert.JSONEq(t, "[]", list.Body.String())
	})

	t.Run("admin approves the profile", func(t *testing.T) {
		w := do(http.MethodPatch,
			fmt.Sprintf("/api/admin/psychologists/%d/status", psychologistID),
			adminToken, map[string]any{"status": "approved"})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("patient registers and sees the full grid", func(t *testing.T) {
		w := do(http.MethodPost, "/api/auth/register", "", map[string]any{
			"name":     "Pat Doe",
			"email":    "pat@example.com",
			"password": "password123",
			"role":     "patient",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		patientToken = decode(w)["token"].(string)

		slots := do(http.MethodGet,
			fmt.Sprintf("/api/appointments/slots/%d", psychologistID),
			patientToken, nil)
		require.Equal(t, http.StatusOK, slots.Code)

		body := decode(slots)
		all := body["slots"].([]any)
		require.NotEmpty(t, all)
		assert.Equal(t, "2024-03-04T09:00:00Z", all[0])
	})

	t.Run("patient books the first slot", func(t *testing.T) {
		w := do(http.MethodPost, "/api/appointments", patientToken, map[string]any{
			"psychologistId":      psychologistID,
			"appointmentDateTime": "2024-03-04T09:00:00Z",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		body := decode(w)
		assert.Equal(t, "scheduled", body["status"])

		var count int64
		testDB.Model(&model.Appointment{}).Count(&count)
		assert.Equal(t, int64(1), count)
		assert.Len(t, notifier.ids, 1)
	})

	t.Run("booked slot disappears and stays conflicted", func(t *testing.T) {
		slots := do(http.MethodGet,
			fmt.Sprintf("/api/appointments/slots/%d", psychologistID),
			patientToken, nil)
		require.Equal(t, http.StatusOK, slots.Code)
		assert.NotContains(t, slots.Body.String(), "2024-03-04T09:00:00Z")

		again := do(http.MethodPost, "/api/appointments", patientToken, map[string]any{
			"psychologistId":      psychologistID,
			"appointmentDateTime": "2024-03-04T09:00:00Z",
		})
		require.Equal(t, http.StatusBadRequest, again.Code)
		assert.Contains(t, again.Body.String(), "This time slot is already booked")

		var count int64
		testDB.Model(&model.Appointment{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("both parties see the appointment", func(t *testing.T) {
		mine := do(http.MethodGet, "/api/appointments/my", patientToken, nil)
		require.Equal(t, http.StatusOK, mine.Code)
		assert.Contains(t, mine.Body.String(), "Dr. Riva")

		roster := do(http.MethodGet, "/api/appointments/psychologist", psychToken, nil)
		require.Equal(t, http.StatusOK, roster.Code)
		assert.Contains(t, roster.Body.String(), "Pat Doe")
	})
}
