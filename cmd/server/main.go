package main

import (
	"fmt"
	"log"

	"github.com/KeithDimech1/Thermo-App-sub001/config"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/api"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/api/handler"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/database"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/llm"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/storage"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	var store storage.Store
	if cfg.Storage.Endpoint != "" {
		ossClient, err := storage.NewClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to init OSS storage: %v", err)
		}
		store = ossClient
		log.Println("OSS storage ready")
	} else {
		localStore, err := storage.NewLocalStore(cfg.Storage.LocalDir)
		if err != nil {
			log.Fatalf("Failed to init local storage: %v", err)
		}
		store = localStore
		log.Printf("Local storage ready at %s", cfg.Storage.LocalDir)
	}

	llmClient := llm.NewClient(cfg.LLM)

	sessionRepo := repository.NewSessionRepository(db)
	extractedRepo := repository.NewExtractedTableRepository(db)
	datasetRepo := repository.NewDatasetRepository(db)
	configRepo := repository.NewConfigRepository(db)
	browseRepo := repository.NewBrowseRepository(db)

	extractionService := service.NewExtractionService(sessionRepo, extractedRepo, datasetRepo, store, llmClient, cfg)
	configService := service.NewConfigService(configRepo)
	browseService := service.NewBrowseService(browseRepo, cfg.Tables)
	datasetService := service.NewDatasetService(datasetRepo, store)
	fairService := service.NewFairService(datasetRepo, store, llmClient, cfg)

	configsHandler := handler.NewConfigsHandler(configService)
	tablesHandler := handler.NewTablesHandler(browseService)
	datasetsHandler := handler.NewDatasetsHandler(datasetService, fairService)
	extractionHandler := handler.NewExtractionHandler(extractionService, cfg)

	router := api.NewRouter(
		configsHandler,
		tablesHandler,
		datasetsHandler,
		extractionHandler,
		cfg,
	)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
