package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"mindcare-backend/config"
	"mindcare-backend/internal/model"
	"mindcare-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	authed := mw.Authenticate(h.issuer)

	api := r.Group("/api")
	api.Use(mw.RequestID(), rateLimiter)
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		// Public, cacheable directory and reading surface.
		api.GET("/psychologists", caching, h.ListPsychologists)
		api.GET("/psychologists/:id", caching, h.GetPsychologist)
		api.GET("/articles", caching, h.ListArticles)
		api.GET("/articles/:id", caching, h.GetArticle)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		// Booking engine. Availability is never cached: a booked slot
		// must disappear from the very next listing.
		api.GET("/appointments/slots/:psychologist_id", authed, h.GetSlots)
		api.POST("/appointments", authed, h.BookAppointment)
		api.GET("/appointments/my", authed, mw.RequireRole(model.RolePatient), h.MyAppointments)
		api.GET("/appointments/psychologist", authed, mw.RequireRole(model.RolePsychologist), h.PsychologistAppointments)

		// Articles, author side.
		api.POST("/articles", authed, mw.RequireRole(model.RolePsychologist), h.CreateArticle)
		api.GET("/my/articles", authed, mw.RequireRole(model.RolePsychologist), h.MyArticles)

		// Push subscriptions.
		api.PUT("/subscriptions", authed, h.PutSubscription)
		api.DELETE("/subscriptions", authed, h.DeleteSubscription)

		admin := api.Group("/admin", authed, mw.RequireRole(model.RoleAdmin))
		{
			admin.GET("/psychologists", h.AdminListPsychologists)
			admin.PATCH("/psychologists/:id/status", h.AdminSetPsychologistStatus)
			admin.GET("/articles", h.AdminListArticles)
			admin.PATCH("/articles/:id/status", h.AdminSetArticleStatus)
			admin.GET("/stats", h.AdminStats)
		}
	}

	return r
}
