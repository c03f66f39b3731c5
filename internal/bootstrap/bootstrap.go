package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/kim0040/codingmaker-web-sub000/internal/app/controllers"
	appMigrations "github.com/kim0040/codingmaker-web-sub000/internal/app/migrations"
	appRepos "github.com/kim0040/codingmaker-web-sub000/internal/app/repositories"
	appRoutes "github.com/kim0040/codingmaker-web-sub000/internal/app/routes"
	appServices "github.com/kim0040/codingmaker-web-sub000/internal/app/services"
	"github.com/kim0040/codingmaker-web-sub000/internal/config"
	"github.com/kim0040/codingmaker-web-sub000/internal/db"
	appMiddleware "github.com/kim0040/codingmaker-web-sub000/internal/middleware"
	pkgAuth "github.com/kim0040/codingmaker-web-sub000/internal/pkg/auth"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/helpers"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/logger"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/ws"
	"github.com/kim0040/codingmaker-web-sub000/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos  *appRepos.Repositories
	Cipher *fieldcrypto.Cipher
	Hub    *ws.Hub

	JWTService        *pkgAuth.JWTService
	AuthService       appServices.AuthService
	UserService       appServices.UserService
	AcademyService    appServices.AcademyService
	CourseService     appServices.CourseService
	AttendanceService appServices.AttendanceService
	CommunityService  appServices.CommunityService
	FriendService     appServices.FriendService
	ChatService       appServices.ChatService
	AnalyticsService  appServices.AnalyticsService

	Controllers appRoutes.Controllers

	AuthMiddleware *appMiddleware.AuthMiddleware
	RateLimiter    *appMiddleware.RateLimiter
	WSHandler      *ws.Handler

	RedisClient *redis.Client
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	migrator := appMigrations.NewMigrator(dbPool)
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	cipher, err := fieldcrypto.NewCipher(cfg.CipherKey())
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("invalid cipher key: %w", err)
	}
	if err := seed.CreateDefaultData(context.Background(), dbPool, cipher, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and the
// realtime hub.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	cipher, err := fieldcrypto.NewCipher(cfg.CipherKey())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize field cipher: %w", err)
	}
	deps.Cipher = cipher

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.ExpiresIn, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	deps.Hub = ws.NewHub(lgr)
	go deps.Hub.Run()

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, cipher, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, cipher, lgr)
	deps.AcademyService = appServices.NewAcademyService(deps.Repos.AcademyRepository, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.AttendanceRepository,
		deps.Repos.UserRepository,
		cipher,
		deps.Hub,
		lgr,
	)
	deps.CommunityService = appServices.NewCommunityService(deps.Repos.PostRepository, cipher, lgr)
	deps.FriendService = appServices.NewFriendService(deps.Repos.FriendshipRepository, deps.Repos.UserRepository, cipher, lgr)
	deps.ChatService = appServices.NewChatService(deps.Repos.ChatRepository, deps.Repos.UserRepository, cipher, deps.Hub, lgr)
	deps.AnalyticsService = appServices.NewAnalyticsService(deps.Repos.AnalyticsRepository, cipher, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.RateLimiter = appMiddleware.NewRateLimiter(deps.RedisClient)
	deps.WSHandler = ws.NewHandler(deps.Hub, deps.ChatService, lgr)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, lgr),
		User:       appControllers.NewUserController(deps.UserService, lgr),
		Academy:    appControllers.NewAcademyController(deps.AcademyService, lgr),
		Course:     appControllers.NewCourseController(deps.CourseService, lgr),
		Attendance: appControllers.NewAttendanceController(deps.AttendanceService, lgr),
		Community:  appControllers.NewCommunityController(deps.CommunityService, lgr),
		Friend:     appControllers.NewFriendController(deps.FriendService, lgr),
		Chat:       appControllers.NewChatController(deps.ChatService, lgr),
		Analytics:  appControllers.NewAnalyticsController(deps.AnalyticsService, lgr),
		Health:     appControllers.NewHealthController(dbPool),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS(cfg.Server.FrontendURL))

	limits := appRoutes.ParseRateLimits(
		cfg.RateLimit.LoginWindow, cfg.RateLimit.LoginMax,
		cfg.RateLimit.CheckInWindow, cfg.RateLimit.CheckInMax,
	)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.RateLimiter, limits, deps.WSHandler)

	return router
}
