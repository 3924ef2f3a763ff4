package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/auth"
	"github.com/ideaboard/ideaboard-api/internal/config"
	"github.com/ideaboard/ideaboard-api/internal/middleware"
	"github.com/ideaboard/ideaboard-api/internal/repository"
	"github.com/ideaboard/ideaboard-api/internal/services"
	"github.com/ideaboard/ideaboard-api/internal/storage"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers onto r under /api/v1.
// uploader and statsCache may be nil.
func SetupRouter(r *gin.Engine, cfg *config.Config, db *gorm.DB, uploader storage.Uploader, statsCache services.StatsCache) {
	tokens := auth.NewTokenServiceFromConfig(cfg)

	userRepo := repository.NewUserRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := services.NewAuthService(userRepo, tokens, uploader, cfg.AllowAdminSignup)
	ideaService := services.NewIdeaService(ideaRepo, uploader, statsCache)
	commentService := services.NewCommentService(commentRepo, ideaRepo)

	healthHandler := NewHealthHandler(db)
	userHandler := NewUserHandler(authService, tokens, cfg.UploadDir)
	tokenHandler := NewTokenHandler(tokens)
	ideaHandler := NewIdeaHandler(ideaService, cfg.UploadDir)
	commentHandler := NewCommentHandler(commentService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)
	requireAdmin := middleware.RequireAdmin()

	r.Use(middleware.CORS(cfg.CORSOrigin))

	api := r.Group("/api/v1")
	{
		api.GET("/healthcheck", healthHandler.HealthCheck)
		api.POST("/verifyaccesstoken", tokenHandler.VerifyAccessToken)

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh-token", userHandler.RefreshToken)
			users.POST("/logout", requireAuth, userHandler.Logout)
			users.GET("/current-user", requireAuth, userHandler.CurrentUser)
		}

		ideas := api.Group("/idea")
		ideas.Use(requireAuth)
		{
			ideas.POST("/create", ideaHandler.CreateIdea)
			ideas.GET("/getIdeas", ideaHandler.ListMyIdeas)
			ideas.GET("/getIdeaById/:id", ideaHandler.GetIdea)
			ideas.GET("/getTopIdea", ideaHandler.TopIdeas)
			ideas.PUT("/update/:id", ideaHandler.UpdateIdea)
			ideas.PUT("/updateState/:id", ideaHandler.UpdateState)
			ideas.GET("/getIdeaByState", ideaHandler.ListByState)
			ideas.DELETE("/delete/:id", ideaHandler.DeleteIdea)
			ideas.PUT("/like/:id", ideaHandler.ToggleLike)

			ideas.PUT("/updatestatus/:id", requireAdmin, ideaHandler.UpdateStatus)
			ideas.GET("/get", requireAdmin, ideaHandler.ListAllIdeas)
			ideas.GET("/getIdeaStatistics", requireAdmin, ideaHandler.Statistics)
			ideas.GET("/getIdeasByStatus", requireAdmin, ideaHandler.ListByStatus)
		}

		comments := api.Group("/comment")
		comments.Use(requireAuth)
		{
			comments.GET("/getComment/:id", commentHandler.GetComments)
			comments.POST("/addComment", commentHandler.AddComment)
		}
	}
}
