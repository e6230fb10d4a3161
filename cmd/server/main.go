package main

import (
	"fmt"
	"log"

	"docext/internal/classifier"
	"docext/internal/classifier/gemini"
	"docext/internal/config"
	"docext/internal/email/noop"
	"docext/internal/email/ses"
	"docext/internal/handler"
	"docext/internal/layoutmodel"
	"docext/internal/ocr"
	"docext/internal/port"
	"docext/internal/repository/postgres"
	"docext/internal/router"
	"docext/internal/service"
	s3storage "docext/internal/storage/s3"
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
	recordRepo := postgres.NewExtractionRecordRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Engine handles are created lazily on first extraction.
	engines := service.NewEngineProvider(
		func() (port.OCREngine, error) {
			return ocr.NewClient(&cfg.OCR), nil
		},
		func() (port.TokenClassifier, error) {
			return layoutmodel.NewClient(&cfg.Layout), nil
		},
	)

	// Document-type classification: remote when configured, heuristic always
	// backs it.
	var remote port.DocumentClassifier
	if cfg.Classifier.RemoteConfigured() {
		remote = gemini.NewClassifier(&cfg.Classifier.Remote)
		log.Printf("using remote document classifier (%s)", cfg.Classifier.Remote.Provider)
	}
	heuristic := classifier.NewHeuristic()
	heuristic.MinScore = cfg.Classifier.MinScore
	chain := classifier.NewChain(remote, heuristic)

	// Notification email
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	extractionSvc := service.NewExtractionService(engines, chain, recordRepo, s3Client, emailSender, cfg)

	// Initialize handlers
	extractionH := handler.NewExtractionHandler(extractionSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, extractionH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
