package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/controller"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/pkg/database"
	"vocab_edu_backend/pkg/logger"
	"vocab_edu_backend/pkg/monitoring"
	"vocab_edu_backend/pkg/security"
	"vocab_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user          *repository.UserRepository
	topic         *repository.TopicRepository
	vocabulary    *repository.VocabularyRepository
	progress      *repository.VocabularyProgressRepository
	quiz          *repository.QuizRepository
	quizQuestion  *repository.QuizQuestionRepository
	result        *repository.ResultRepository
	pronunciation *repository.PronunciationRepository
}

type services struct {
	auth          *service.AuthService
	user          *service.UserService
	topic         *service.TopicService
	vocabulary    *service.VocabularyService
	practice      *service.PracticeService
	progress      *service.ProgressService
	quiz          *service.QuizService
	quizQuestion  *service.QuizQuestionService
	pronunciation *service.PronunciationService
	speech        *service.SpeechClientService
	audio         *service.AudioService
	storage       *service.StorageService
	assetHub      *service.AssetHub
}

type controllers struct {
	auth          *controller.AuthController
	user          *controller.UserController
	topic         *controller.TopicController
	vocabulary    *controller.VocabularyController
	practice      *controller.PracticeController
	progress      *controller.ProgressController
	quiz          *controller.QuizController
	pronunciation *controller.PronunciationController
	speech        *controller.SpeechController
	health        *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		topic:         repository.NewTopicRepository(db),
		vocabulary:    repository.NewVocabularyRepository(db),
		progress:      repository.NewVocabularyProgressRepository(db),
		quiz:          repository.NewQuizRepository(db),
		quizQuestion:  repository.NewQuizQuestionRepository(db),
		result:        repository.NewResultRepository(db),
		pronunciation: repository.NewPronunciationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.speech = service.NewSpeechClientService(cfg.Speech)

	s.assetHub = service.NewAssetHub(rdb)
	go s.assetHub.Run()

	s.audio = service.NewAudioService(repos.vocabulary, s.speech, s.assetHub, cfg.Engine)
	s.quizQuestion = service.NewQuizQuestionService(repos.quizQuestion, repos.vocabulary)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.topic = service.NewTopicService(repos.topic)
	s.vocabulary = service.NewVocabularyService(repos.vocabulary, repos.topic, repos.result, s.audio, s.quizQuestion, rdb)
	s.practice = service.NewPracticeService(repos.progress, repos.vocabulary, repos.result, cfg.Engine, db)
	s.progress = service.NewProgressService(repos.result, repos.vocabulary, cfg.Engine)

	evaluator := service.NewAnswerEvaluator(cfg.Engine.SimilarityThreshold)
	s.quiz = service.NewQuizService(repos.quiz, repos.quizQuestion, repos.vocabulary, repos.result, evaluator, db)
	s.pronunciation = service.NewPronunciationService(repos.pronunciation, repos.vocabulary, s.speech, s.practice, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		user:          controller.NewUserController(s.user),
		topic:         controller.NewTopicController(s.topic),
		vocabulary:    controller.NewVocabularyController(s.vocabulary, s.audio),
		practice:      controller.NewPracticeController(s.practice),
		progress:      controller.NewProgressController(s.progress),
		quiz:          controller.NewQuizController(s.quiz),
		pronunciation: controller.NewPronunciationController(s.pronunciation),
		speech:        controller.NewSpeechController(s.speech, s.vocabulary, s.audio),
		health:        controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks runs the hourly sweep that retries audio for
// vocabularies whose generation failed permanently.
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			if _, err := s.audio.RegenerateMissing(); err != nil {
				logger.Log.Error("missing audio sweep failed", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
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
	svcs := app.initServices(repos, cfg, db, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("vocab-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/recordings", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(svcs)

	return app
}

// ApplyConfig swaps in a hot-reloaded configuration. Anything that
// reads through the shared pointer per request (JWT verification,
// speech tunables) picks the new values up immediately; listen address
// and database settings need a restart.
func (a *App) ApplyConfig(newCfg interface{}) {
	cfg, ok := newCfg.(*config.Config)
	if !ok {
		return
	}
	cfg.ForceMigrate = a.Config.ForceMigrate
	cfg.MigrateOnly = a.Config.MigrateOnly
	*a.Config = *cfg
	logger.Log.Info("configuration reloaded")
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	if a.services != nil {
		a.services.assetHub.Stop()
		a.services.audio.Wait()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("server exited")
}
