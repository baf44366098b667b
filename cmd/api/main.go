package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limitermw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/rizalmf/backend-storefront/internal/catalog"
	"github.com/rizalmf/backend-storefront/internal/common"
	"github.com/rizalmf/backend-storefront/internal/config"
	"github.com/rizalmf/backend-storefront/internal/events"
	"github.com/rizalmf/backend-storefront/internal/health"
	"github.com/rizalmf/backend-storefront/internal/notify"
	"github.com/rizalmf/backend-storefront/internal/obs"
	"github.com/rizalmf/backend-storefront/internal/order"
	"github.com/rizalmf/backend-storefront/internal/pricing"
	"github.com/rizalmf/backend-storefront/internal/validate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()
	obs.MustRegisterDomainMetrics("storefront", nil)
	httpMetrics := obs.NewHTTPMetrics("storefront", nil, nil)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(opts)
		defer func() { _ = redisClient.Close() }()
	}

	store := catalog.NewStore()
	if cfg.CatalogSeedPath != "" {
		products, err := catalog.LoadSeed(cfg.CatalogSeedPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.CatalogSeedPath).Msg("load catalog seed")
		}
		for _, p := range products {
			store.Add(p)
		}
		logger.Info().Int("products", len(products)).Msg("catalog seeded")
	} else {
		logger.Warn().Msg("no catalog seed configured, starting with an empty catalog")
	}

	cache := catalog.NewCache(redisClient, cfg.CacheTTL)
	catalogService, err := catalog.NewService(catalog.ServiceConfig{Store: store, Cache: cache})
	if err != nil {
		logger.Fatal().Err(err).Msg("build catalog service")
	}

	engine, err := pricing.NewEngine(store, cfg.Pricing)
	if err != nil {
		logger.Fatal().Err(err).Msg("build pricing engine")
	}

	notifyService := notify.NewService()
	bus := &events.Bus{Notifiers: []events.Notifier{
		notify.Subscriber{Service: notifyService, Mail: common.NopEmailSender{}, Enabled: true},
	}}

	orderService, err := order.NewService(order.ServiceConfig{
		Catalog:           store,
		Bus:               bus,
		Rules:             cfg.Pricing,
		LowStockThreshold: cfg.LowStockThreshold,
		AlertEmail:        cfg.AlertEmail,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("build order service")
	}

	payloadValidator := validate.New()
	catalogHandler := catalog.NewHandler(catalog.HandlerConfig{Service: catalogService, LowStockThreshold: cfg.LowStockThreshold})
	pricingHandler := pricing.NewHandler(pricing.HandlerConfig{Engine: engine, Validate: payloadValidator})
	orderHandler := order.NewHandler(order.HandlerConfig{Service: orderService, Validate: payloadValidator})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.RateLimitPerMin > 0 {
		rateStore, err := newLimiterStore(redisClient)
		if err != nil {
			logger.Fatal().Err(err).Msg("build rate limiter store")
		}
		rate := limiter.Rate{Period: time.Minute, Limit: int64(cfg.RateLimitPerMin)}
		r.Use(limitermw.NewMiddleware(limiter.New(rateStore, rate)).Handler)
	}

	r.Handle("/metrics", promhttp.Handler())

	healthHandler := health.Handler{}
	if redisClient != nil {
		healthHandler.Checker = readinessChecker{redis: redisClient}
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/products/search", catalogHandler.Search)
		v.Get("/products/low-stock", catalogHandler.LowStock)
		v.Get("/products/{id}", catalogHandler.ProductDetail)

		v.Post("/cart/quote", pricingHandler.Quote)

		v.Route("/orders", func(o chi.Router) {
			o.Post("/", orderHandler.Create)
			o.Get("/{id}", orderHandler.Detail)
			o.Post("/{id}/cancel", orderHandler.Cancel)
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func newLimiterStore(redisClient *redis.Client) (limiter.Store, error) {
	if redisClient == nil {
		return limitermem.NewStore(), nil
	}
	return limiterredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: "storefront:ratelimit"})
}

type readinessChecker struct {
	redis *redis.Client
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}
