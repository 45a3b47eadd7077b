package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isimm-manager/db"
	"isimm-manager/logging"
)

// NewRouter wires every route onto a fresh gin engine
func NewRouter(service *db.RedisService, appName string, logger *zap.Logger) *gin.Engine {
	apiHandler := NewAPIHandler(service, appName, logger)
	pageHandler := NewPageHandler(service, logger)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(logging.GinLogger(logger), gin.Recovery())
	router.SetHTMLTemplate(Templates())

	// Setup API routes
	api := router.Group("/api")
	{
		api.GET("/niveaus", apiHandler.GetAllNiveaus)
		api.POST("/niveaus", apiHandler.CreateNiveau)
		api.GET("/niveaus/:id", apiHandler.GetNiveau)
		api.PUT("/niveaus/:id", apiHandler.UpdateNiveau)
		api.PATCH("/niveaus/:id", apiHandler.PartialUpdateNiveau)
		api.DELETE("/niveaus/:id", apiHandler.DeleteNiveau)

		api.POST("/import/niveaus", apiHandler.ImportNiveaus)
		api.GET("/export/niveaus", apiHandler.ExportNiveaus)

		api.GET("/ping", apiHandler.Ping)
	}

	// Server-rendered screens
	router.GET("/niveau", pageHandler.List)
	router.GET("/niveau/:id", pageHandler.Detail)
	router.GET("/niveau/:id/delete", pageHandler.ConfirmDelete)
	router.POST("/niveau/:id/delete", pageHandler.Delete)

	return router
}
