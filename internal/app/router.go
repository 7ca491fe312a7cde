package app

import (
	"vocab_edu_backend/docs"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/middleware"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"vocab_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Catalog browsing is open to guests.
		public.GET("/vocabularies", c.vocabulary.GetAll)
		public.GET("/vocabularies/search", c.vocabulary.Search)
		public.GET("/vocabularies/random", c.vocabulary.GetRandom)
		public.GET("/vocabularies/topic/:topicId", c.vocabulary.GetByTopic)
		public.GET("/vocabularies/:id", c.vocabulary.GetByID)

		public.GET("/topics", c.topic.GetAll)
		public.GET("/topics/:id", c.topic.GetByID)

		public.GET("/speech/health", c.speech.Health)
		public.GET("/speech/voices", c.speech.Voices)
		public.GET("/speech/tts-status/:vocabId", c.speech.TTSStatus)
	}
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/users/profile", c.user.GetProfile)
	rg.PUT("/users/profile", c.user.UpdateProfile)

	rg.GET("/vocabularies/with-progress", c.vocabulary.GetWithProgress)

	practice := rg.Group("/practice")
	{
		practice.POST("/submit", c.practice.Submit)
		practice.POST("/bookmark", c.practice.Bookmark)
		practice.GET("/learned", c.practice.Learned)
		practice.GET("/bookmarked", c.practice.Bookmarked)
		practice.GET("/stats/:vocabId", c.practice.Stats)
	}

	quizzes := rg.Group("/quizzes")
	{
		quizzes.POST("", c.quiz.Create)
		quizzes.GET("", c.quiz.List)
		quizzes.GET("/statistics", c.quiz.Statistics)
		quizzes.GET("/:id", c.quiz.Get)
		quizzes.POST("/:id/submit", c.quiz.Submit)
		quizzes.DELETE("/:id", c.quiz.Delete)
	}

	pronunciation := rg.Group("/pronunciation")
	{
		pronunciation.POST("/practice", c.pronunciation.Practice)
		pronunciation.POST("/practice-upload", c.pronunciation.PracticeUpload)
		pronunciation.GET("/attempts", c.pronunciation.Attempts)
		pronunciation.GET("/stats", c.pronunciation.Stats)
	}

	rg.GET("/progress/stats", c.progress.Stats)

	rg.POST("/speech/recognize", c.speech.Recognize)
	rg.POST("/speech/generate-tts", c.speech.GenerateTTS)

	rg.GET("/ws/assets", func(ctx *gin.Context) {
		claims := util.GetUserFromContext(ctx)
		if claims == nil {
			return
		}
		service.ServeAssetWs(a.services.assetHub, ctx.Writer, ctx.Request, claims.UserID)
	})
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/vocabularies", c.vocabulary.Create)
		admin.PUT("/vocabularies/:id", c.vocabulary.Update)
		admin.DELETE("/vocabularies/:id", c.vocabulary.Delete)
		admin.POST("/vocabularies/regenerate-audio", c.vocabulary.RegenerateAudio)
	}
}
