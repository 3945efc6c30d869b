package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/notify"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/revocation"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/reminders"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/database"
	"github.com/comitanigiacomo/kanso-habits/migrations"
)

// app holds everything main needs to serve and to shut down.
type app struct {
	router    *gin.Engine
	scheduler *reminders.Scheduler
	db        *sqlx.DB
	redis     *redis.Client
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, migrations.Files); err != nil {
		db.Close()
		return nil, err
	}
	log.Info().Str("host", cfg.DBHost).Msg("database ready")

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = cache.NewRedisClient(ctx, cfg)
		if err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("host", cfg.RedisHost).Msg("redis ready")
	} else {
		log.Warn().Msg("redis disabled: no cache, rate limiting or notification pub/sub")
	}

	var (
		habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
		revoked   services.RevocationStore
		notifier  = notify.Multi{notify.NewLogNotifier(logger)}
	)
	if rdb != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb)
		revoked = revocation.NewRedisStore(rdb)
		notifier = append(notifier, notify.NewRedisNotifier(rdb))
	} else {
		revoked = revocation.NewMemoryStore()
	}

	userRepo := repository.NewPostgresUserRepository(db)
	checkInRepo := repository.NewPostgresCheckInRepository(db)

	scheduler := reminders.NewScheduler(notifier, cfg.NotificationQueueSize)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenDuration, userRepo, revoked)
	authService := services.NewAuthService(userRepo, tokenService, services.FederatedConfig{
		Issuer: cfg.FederatedIssuer,
		Secret: cfg.FederatedSecret,
	}, scheduler)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	annotations := adapterHTTP.NewAnnotationHandler(
		services.NewNoteService(repository.NewPostgresNoteRepository(db, domain.NoteKindHabit), habitRepo),
		services.NewDistractionService(repository.NewPostgresNoteRepository(db, domain.NoteKindDistraction), habitRepo),
		services.NewPomodoroService(repository.NewPostgresPomodoroRepository(db), habitRepo),
	)

	rateLimit := middleware.RateLimit{
		Limit:  cfg.RateLimitRequests,
		Window: cfg.RateLimitWindow,
		Prefix: cfg.RateLimitPrefix,
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:         adapterHTTP.NewAuthHandler(authService),
		HabitHandler:        adapterHTTP.NewHabitHandler(services.NewHabitService(habitRepo, scheduler)),
		CheckInHandler:      adapterHTTP.NewCheckInHandler(services.NewCheckInService(checkInRepo, habitRepo)),
		StatsHandler:        adapterHTTP.NewStatsHandler(services.NewStatsService(habitRepo, checkInRepo)),
		CategoryHandler:     adapterHTTP.NewCategoryHandler(services.NewCategoryService(repository.NewPostgresCategoryRepository(db))),
		AnnotationHandler:   annotations,
		NotificationHandler: adapterHTTP.NewNotificationHandler(scheduler),
		TokenValidator:      tokenService,
		DB:                  db,
		Redis:               rdb,
		RateLimit:           rateLimit,
		StartTime:           time.Now(),
	})

	return &app{router: router, scheduler: scheduler, db: db, redis: rdb}, nil
}

func (a *app) Close() error {
	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = fmt.Errorf("close redis: %w", err)
		}
	}
	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close database: %w", err)
	}
	return firstErr
}
