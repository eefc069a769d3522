package config

import (
	"pdf-search-server/internal/domain"
	"pdf-search-server/internal/extractor"
	"pdf-search-server/internal/scanner"
	"pdf-search-server/internal/service"
	"pdf-search-server/internal/session"
	"pdf-search-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config        domain.Config
	Logger        domain.Logger
	Scanner       domain.CorpusScanner
	Extractor     domain.TextExtractor
	SearchService domain.SearchService
	SessionStore  *session.Store
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	pdfScanner := scanner.NewPDFScanner(appLogger)
	textExtractor := extractor.NewFitzExtractor(appLogger, config.GetExtractTimeout())
	searchService := service.NewSearchService(pdfScanner, textExtractor, appLogger, config.GetSearchWorkers())
	sessionStore := session.NewStore(config.GetSessionTTL(), appLogger)

	return &Container{
		Config:        config,
		Logger:        appLogger,
		Scanner:       pdfScanner,
		Extractor:     textExtractor,
		SearchService: searchService,
		SessionStore:  sessionStore,
	}
}
