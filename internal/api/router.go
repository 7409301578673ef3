package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"smarthome-backend/config"
	"smarthome-backend/internal/mw"
	"smarthome-backend/internal/notification"
	"smarthome-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool, srv *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions, pool)

	limit := rate.Limit(srv.RateLimitPerSec)
	if limit <= 0 {
		limit = rate.Limit(10)
	}
	burst := srv.RateLimitBurst
	if burst <= 0 {
		burst = 5
	}
	rateLimiter := mw.RateLimiter(limit, burst, srv.RequestIPHeader)

	ttl := time.Duration(srv.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/houses", handler.CreateHouse)
		api.GET("/houses", handler.ListHouses)
		api.GET("/houses/:id", handler.GetHouse)
		api.PUT("/houses/:id", handler.UpdateHouse)
		api.DELETE("/houses/:id", handler.DeleteHouse)

		api.POST("/rooms", handler.CreateRoom)
		api.GET("/rooms", handler.ListRooms)
		api.GET("/rooms/:id", handler.GetRoom)
		api.PUT("/rooms/:id", handler.UpdateRoom)
		api.DELETE("/rooms/:id", handler.DeleteRoom)

		api.POST("/lights", handler.CreateLight)
		api.GET("/lights", handler.ListLights)
		api.GET("/lights/:id", handler.GetLight)
		api.PUT("/lights/:id", handler.UpdateLight)
		api.DELETE("/lights/:id", handler.DeleteLight)

		api.POST("/thermostats", handler.CreateThermostat)
		api.GET("/thermostats", handler.ListThermostats)
		api.GET("/thermostats/:id", handler.GetThermostat)
		api.PUT("/thermostats/:id", handler.UpdateThermostat)
		api.DELETE("/thermostats/:id", handler.DeleteThermostat)

		// Read-only audit surface.
		api.GET("/track-records", handler.GetTrackRecords)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		// The key never changes while the process runs, so it is the one
		// response worth caching.
		api.GET("/vapid_public_key", caching, handler.GetVAPIDPublicKey)
	}

	return r
}
