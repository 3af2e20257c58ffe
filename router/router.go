package router

import (
	"log/slog"

	"chamados/config"
	"chamados/controllers"
	"chamados/db"
	"chamados/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// New monta o engine com o pool injetado em cada requisição.
func New(cfg config.Configuration, database *gorm.DB, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(db.Inject(database))
	Initialize(r, cfg, logger)
	return r
}

// Initialize wires all routes and middlewares.
func Initialize(r *gin.Engine, cfg config.Configuration, logger *slog.Logger) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowOrigins))
	r.Use(Logger(logger))

	r.GET("/health", controllers.Health)

	api := r.Group("/api")

	// Chamados
	api.POST("/chamados", controllers.CreateChamado)
	api.GET("/chamados", controllers.ListChamados)
	api.GET("/chamados/search", controllers.SearchChamados)
	api.GET("/chamados/:nm_chamado", controllers.GetChamado)
	api.PUT("/chamados/:nm_chamado", controllers.RespondChamado)

	// Login
	api.POST("/login", controllers.Login)

	// Colaboradores
	api.GET("/colaboradores", controllers.GetColaboradores)
	api.GET("/colaboradores/:id", controllers.GetColaboradorByID)
	api.POST("/colaboradores", controllers.CreateColaborador)
	api.PUT("/colaboradores/:id", controllers.UpdateColaborador)
	api.DELETE("/colaboradores/:id", controllers.DeleteColaborador)

	logger.Info("routes initialized")
}
