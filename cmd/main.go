package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/phynetix/grading-api/config"
	"github.com/phynetix/grading-api/database"
	"github.com/phynetix/grading-api/docs"
	"github.com/phynetix/grading-api/internal/cache"
	"github.com/phynetix/grading-api/internal/controller"
	adminctrl "github.com/phynetix/grading-api/internal/controller/admin"
	userctrl "github.com/phynetix/grading-api/internal/controller/user"
	"github.com/phynetix/grading-api/internal/logger"
	"github.com/phynetix/grading-api/internal/middleware"
	"github.com/phynetix/grading-api/internal/model"
	"github.com/phynetix/grading-api/internal/repository"
	"github.com/phynetix/grading-api/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title PhyNetix Grading API
// @version 1.0
// @description Grades submitted test attempts, ranks them among peers and serves leaderboards.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	docs.SwaggerInfo.Version = cfg.App.Version

	app := fx.New(
		fx.Supply(cfg),
		fx.NopLogger,

		// Core Application Components
		fx.Provide(
			database.NewDatabase,
			cache.NewLeaderboardCache,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewTestAttemptRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGradingService,
			service.NewRankingService,
			service.NewQuestionService,
			service.NewLeaderboardService,
			service.NewTestSubmissionService,
			service.NewUserTestService,
			service.NewAdminTestService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewHealthController,
			adminctrl.NewAdminTestController,
			userctrl.NewUserTestController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	app.Run()
	log.Info().Msg("Application shut down")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !containsWildcard(cfg.Server.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	healthCtrl *controller.HealthController,
	adminTestCtrl *adminctrl.AdminTestController,
	userTestCtrl *userctrl.UserTestController,
) {
	router.GET("/health", healthCtrl.Health)

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.AuthMiddleware(cfg))
	{
		apiV1.POST("/submit-test", userTestCtrl.SubmitTest)

		apiV1.POST("/tests/:test_id/attempts", userTestCtrl.StartAttempt)
		apiV1.GET("/tests/:test_id/my-attempts", userTestCtrl.GetUserTestAttempts)
		apiV1.GET("/tests/:test_id/leaderboard", userTestCtrl.GetLeaderboard)
		apiV1.GET("/test-attempts/:attempt_id", userTestCtrl.GetSpecificTestAttemptDetails)
	}

	adminAPIGroup := apiV1.Group("/admin", middleware.RequireRole("admin"))
	{
		adminAPIGroup.POST("/tests/:test_id/rerank", adminTestCtrl.RerankTest)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("%s server starting on port %s", cfg.App.Name, cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}

func AutoMigrateDB(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.AutoMigrate {
		log.Info().Msg("DATABASE_AUTO_MIGRATE disabled, skipping migrations")
		return nil
	}
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Course{},
		&model.Chapter{},
		&model.Question{},
		&model.Test{},
		&model.TestQuestion{},
		&model.TestSubject{},
		&model.TestSection{},
		&model.TestSectionQuestion{},
		&model.TestAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
