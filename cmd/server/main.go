package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/skysearch-dev/skysearch/internal/cache"
	"github.com/skysearch-dev/skysearch/internal/calendar"
	"github.com/skysearch-dev/skysearch/internal/config"
	"github.com/skysearch-dev/skysearch/internal/filter"
	"github.com/skysearch-dev/skysearch/internal/handler"
	"github.com/skysearch-dev/skysearch/internal/lookup"
	"github.com/skysearch-dev/skysearch/internal/query"
	"github.com/skysearch-dev/skysearch/internal/ratelimit"
	"github.com/skysearch-dev/skysearch/internal/session"
	"github.com/skysearch-dev/skysearch/internal/skyapi"
	"github.com/skysearch-dev/skysearch/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewEndpointLimiterWithDefaults()
	rateLimiter.SetEndpointLimit(skyapi.EndpointSearchAirport, 10, 20)
	rateLimiter.SetEndpointLimit(skyapi.EndpointPriceCalendar, 5, 10)
	rateLimiter.SetEndpointLimit(skyapi.EndpointSearchFlights, 5, 10)
	rateLimiter.SetEndpointLimit(skyapi.EndpointFlightDetails, 5, 10)

	client := skyapi.NewClient(skyapi.Config{
		BaseURL: cfg.API.BaseURL,
		Host:    cfg.API.Host,
		APIKey:  cfg.API.Key,
		Timeout: cfg.API.Timeout,
	}, rateLimiter)

	searchCache, store := buildStorage(cfg)

	sessions := session.NewManager(func(id string) *session.Session {
		q := query.NewStore()
		return &session.Session{
			Query:       q,
			Origin:      lookup.NewSearcher(client, cfg.Lookup.Debounce),
			Destination: lookup.NewSearcher(client, cfg.Lookup.Debounce),
			Calendar:    calendar.NewPicker(q, client),
			Results:     filter.NewPipeline(),
		}
	}, cfg.Session.TTL)

	stop := make(chan struct{})
	defer close(stop)
	go sessions.SweepLoop(cfg.Session.SweepInterval, stop)

	h := handler.New(sessions, client, searchCache, store)
	h.Register(e)

	log.Printf("Starting flight search server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStorage connects Redis once and shares the connection between the
// search cache and the per-visitor store. With caching disabled both fall
// back to in-process implementations.
func buildStorage(cfg *config.Config) (cache.Cache, storage.Store) {
	if !cfg.Cache.Enabled {
		log.Println("Cache disabled, using in-memory storage")
		return cache.NewNoOpCache(), storage.NewMemoryStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := cache.Connect(ctx, cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.Redis.Host, cfg.Redis.Port, cfg.Cache.TTL)
	return cache.NewRedisCache(client, cfg.Cache.TTL), storage.NewRedisStore(client, cfg.Storage.TTL)
}
