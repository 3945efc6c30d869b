package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/kanso-habits/docs"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
)

type RouterDependencies struct {
	AuthHandler         *AuthHandler
	HabitHandler        *HabitHandler
	CheckInHandler      *CheckInHandler
	StatsHandler        *StatsHandler
	CategoryHandler     *CategoryHandler
	AnnotationHandler   *AnnotationHandler
	NotificationHandler *NotificationHandler
	TokenValidator      middleware.TokenValidator
	DB                  *sqlx.DB
	Redis               *redis.Client
	RateLimit           middleware.RateLimit
	StartTime           time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/health", health(deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	public := apiV1.Group("")
	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenValidator))

	// Anonymous routes are limited per IP, signed-in ones per user.
	if deps.Redis != nil && deps.RateLimit.Enabled() {
		limiter := middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit)
		public.Use(limiter)
		protected.Use(limiter)
	}

	deps.AuthHandler.RegisterRoutes(public)
	{
		deps.AuthHandler.RegisterProtectedRoutes(protected)
		deps.HabitHandler.RegisterRoutes(protected)
		deps.CheckInHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
		deps.CategoryHandler.RegisterRoutes(protected)
		deps.AnnotationHandler.RegisterRoutes(protected)
		deps.NotificationHandler.RegisterRoutes(protected)
	}

	return router
}

// health reports 503 when a configured backend is down. Redis is optional,
// so its absence is reported as "disabled" rather than a failure.
func health(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		statusCode := http.StatusOK

		dbStatus := "disabled"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				dbStatus = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				redisStatus = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	}
}
