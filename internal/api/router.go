package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KeithDimech1/Thermo-App-sub001/config"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/api/handler"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/api/middleware"
)

type Router struct {
	configsHandler    *handler.ConfigsHandler
	tablesHandler     *handler.TablesHandler
	datasetsHandler   *handler.DatasetsHandler
	extractionHandler *handler.ExtractionHandler
	cfg               *config.Config
}

func NewRouter(
	configsHandler *handler.ConfigsHandler,
	tablesHandler *handler.TablesHandler,
	datasetsHandler *handler.DatasetsHandler,
	extractionHandler *handler.ExtractionHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		configsHandler:    configsHandler,
		tablesHandler:     tablesHandler,
		datasetsHandler:   datasetsHandler,
		extractionHandler: extractionHandler,
		cfg:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api")
	{
		// QC config browse
		api.GET("/configs", r.configsHandler.List)

		// Generic table passthrough over the allow-list
		tables := api.Group("/tables")
		{
			tables.GET("/:name", r.tablesHandler.Browse)
			tables.GET("/:name/export", r.tablesHandler.Export)
		}

		// Imported datasets and FAIR scoring
		datasets := api.Group("/datasets")
		{
			datasets.GET("", r.datasetsHandler.List)
			datasets.GET("/:id", r.datasetsHandler.Get)
			datasets.POST("/:id/fair/analyze", r.datasetsHandler.AnalyzeFair)
		}

		// PDF extraction pipeline
		extraction := api.Group("/extraction")
		{
			extraction.POST("/upload", r.extractionHandler.Upload)
			extraction.GET("/:sessionId", r.extractionHandler.Get)
			extraction.POST("/:sessionId/analyze", r.extractionHandler.Analyze)
			extraction.POST("/:sessionId/extract", r.extractionHandler.Extract)
			extraction.POST("/:sessionId/import", r.extractionHandler.Import)
		}
	}

	return engine
}
