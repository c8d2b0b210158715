package main

import (
	"fmt"
	"log"

	"academico/internal/config"
	"academico/internal/extract"
	"academico/internal/handler"
	"academico/internal/reconcile"
	"academico/internal/repository/postgres"
	"academico/internal/router"
	"academico/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	catalogRepo := postgres.NewCatalogRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Initialize the extraction/reconciliation engine
	extractor := extract.NewExtractor()
	engine := reconcile.NewEngine(catalogRepo)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	transcriptSvc := service.NewTranscriptService(extractor, engine)
	catalogSvc := service.NewCatalogService(catalogRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	transcriptH := handler.NewTranscriptHandler(transcriptSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, transcriptH, catalogH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
