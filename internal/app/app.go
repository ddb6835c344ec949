package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorbot_backend/internal/bot"
	"tutorbot_backend/internal/config"
	"tutorbot_backend/internal/controller"
	"tutorbot_backend/internal/rag"
	"tutorbot_backend/internal/repository"
	"tutorbot_backend/internal/service"
	"tutorbot_backend/pkg/database"
	"tutorbot_backend/pkg/logger"
	"tutorbot_backend/pkg/monitoring"
	"tutorbot_backend/pkg/security"
	"tutorbot_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	bot      *bot.Bot
	services *services
}

type repositories struct {
	student    *repository.StudentRepository
	topic      *repository.TopicRepository
	exercise   *repository.ExerciseRepository
	assignment *repository.AssignmentRepository
	hint       *repository.HintRepository
	attempt    *repository.AttemptRepository
	corpus     *repository.CorpusRepository
}

type services struct {
	student    *service.StudentService
	topic      *service.TopicService
	exercise   *service.ExerciseService
	hint       *service.HintService
	submission *service.SubmissionService
	storage    *service.StorageService
	ai         *service.AIService
	corpus     *service.CorpusService
	qa         *service.QAService
}

type controllers struct {
	health   *controller.HealthController
	auth     *controller.AuthController
	topic    *controller.TopicController
	exercise *controller.ExerciseController
	corpus   *controller.CorpusController
	qa       *controller.QAController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		student:    repository.NewStudentRepository(db),
		topic:      repository.NewTopicRepository(db),
		exercise:   repository.NewExerciseRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		hint:       repository.NewHintRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		corpus:     repository.NewCorpusRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.student = service.NewStudentService(repos.student)
	s.topic = service.NewTopicService(repos.topic, rdb)
	s.exercise = service.NewExerciseService(db, repos.exercise, repos.assignment, repos.topic, repos.student, cfg.Tutor.PromotionThreshold)
	s.hint = service.NewHintService(db, repos.hint, repos.exercise, repos.student, repos.assignment)
	s.submission = service.NewSubmissionService(db, repos.attempt, repos.exercise, repos.student, repos.assignment)

	s.ai = service.NewAIService(cfg.AI)
	splitter := rag.NewSplitter(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	store := rag.NewVectorStore(repos.corpus, s.ai, splitter)
	s.corpus = service.NewCorpusService(repos.corpus, s.storage, store)
	s.qa = service.NewQAService(db, store, s.ai, rdb, cfg.RAG.TopK)

	return s, nil
}

func (a *App) initControllers(s *services, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		health:   controller.NewHealthController(db, rdb),
		auth:     controller.NewAuthController(cfg),
		topic:    controller.NewTopicController(s.topic),
		exercise: controller.NewExerciseController(s.exercise, s.hint),
		corpus:   controller.NewCorpusController(s.corpus),
		qa:       controller.NewQAController(s.qa),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, cfg, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("tutorbot-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	telegramBot, err := bot.NewBot(&cfg.Telegram, rdb, services.student, services.topic, services.exercise, services.hint, services.submission, services.qa)
	if err != nil {
		logger.Log.Fatal("Failed to initialize Telegram bot", zap.Error(err))
	}
	app.bot = telegramBot

	return app
}

// Run starts the HTTP server and the Telegram poller, then blocks until an
// interrupt arrives and both have shut down.
func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	botCtx, stopBot := context.WithCancel(context.Background())
	go a.bot.Run(botCtx)

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopBot()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
