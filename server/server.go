package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shopnest/config"
	"shopnest/errs"
	"shopnest/handlers"
	"shopnest/kafka"
	"shopnest/limiter"
	custommiddleware "shopnest/middleware"
	"shopnest/models"
	"shopnest/redis"
	"shopnest/services"
)

type Server struct {
	Echo        *echo.Echo
	DB          *gorm.DB
	Config      *config.Config
	ShopHandler *handlers.ShopHandler
	UserHandler *handlers.UserHandler
}

func NewServer() *Server {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := models.AutoMigrateAll(db); err != nil {
		log.Fatal("Failed to auto-migrate database:", err)
	}

	e := echo.New()
	e.HTTPErrorHandler = errs.HTTPErrorHandler
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentLength},
		MaxAge:           86400,
	}))

	tokenService := services.NewTokenService(&cfg.Auth)
	mailer := services.NewResendMailer(&cfg.Mail)
	mediaStore, err := services.NewS3MediaStore(context.Background(), &cfg.Media)
	if err != nil {
		log.Fatal("Failed to initialize media storage:", err)
	}

	var events *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		saramaCfg, err := kafka.NewSaramaConfig(&cfg.Kafka)
		if err != nil {
			log.Fatal("Failed to build kafka config:", err)
		}
		events, err = kafka.NewProducer(cfg.Kafka.Brokers, saramaCfg)
		if err != nil {
			// Events are best effort; the API stays up without them.
			log.Warn("Kafka unavailable, seller events disabled:", err)
			events = nil
		}
	}

	shopHandler := handlers.NewShopHandler(db, tokenService, mailer, mediaStore, &cfg.Auth, events, cfg.Kafka.Topic)
	userHandler := handlers.NewUserHandler(db, tokenService)

	s := &Server{
		Echo:        e,
		DB:          db,
		Config:      &cfg,
		ShopHandler: shopHandler,
		UserHandler: userHandler,
	}

	isAuthenticated := custommiddleware.IsAuthenticated(db, tokenService)
	isSeller := custommiddleware.IsSeller(db, tokenService)
	s.SetupRoutes(isAuthenticated, isSeller, buildRateLimit(&cfg))
	return s
}

// buildRateLimit returns a pass-through when redis is not configured or
// unreachable; throttling is protection, not a hard dependency.
func buildRateLimit(cfg *config.Config) echo.MiddlewareFunc {
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	if cfg.Redis.Addr == "" || cfg.RateLimit.Limit <= 0 {
		return passthrough
	}

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, rate limiting disabled:", err)
		return passthrough
	}

	var strategy limiter.Strategy = &limiter.FixedWindowStrategy{}
	if cfg.RateLimit.Mode == "token_bucket" {
		strategy = &limiter.TokenBucketStrategy{}
	}
	manager := limiter.NewManager(redisClient.Client, strategy)

	return custommiddleware.NewRateLimitMiddleware(manager, custommiddleware.RateLimitConfig{
		Limit:  cfg.RateLimit.Limit,
		Window: time.Duration(cfg.RateLimit.Window) * time.Second,
	})
}

func (s *Server) Start(addr string) {
	log.Fatal(s.Echo.Start(addr))
}
