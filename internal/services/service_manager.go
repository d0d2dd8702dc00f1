package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/cache"
	"github.com/SAP-F-2025/question-parser-service/internal/events"
	"github.com/SAP-F-2025/question-parser-service/internal/pdf"
	"github.com/SAP-F-2025/question-parser-service/internal/repositories"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
)

// ServiceManager hands the HTTP layer its services.
type ServiceManager interface {
	Parse() ParseService
	Cache() CacheService
	ImportExport() ImportExportService
	QuestionSet() QuestionSetService
}

type Dependencies struct {
	TextSource     pdf.TextSource
	Extractor      QuestionExtractor
	Cache          cache.QuestionCache
	Repository     repositories.QuestionSetRepository // optional
	Publisher      events.EventPublisher
	Validator      *validator.Validator
	MaxUploadBytes int64
	FinalCacheTTL  time.Duration
	Logger         *slog.Logger
}

type serviceManager struct {
	parse        ParseService
	cache        CacheService
	importExport ImportExportService
	questionSet  QuestionSetService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &serviceManager{
		parse:        NewParseService(deps.TextSource, deps.Extractor, deps.Cache, deps.Publisher, ParseServiceConfig{MaxUploadBytes: deps.MaxUploadBytes}, logger),
		cache:        NewCacheService(deps.Cache, deps.Publisher, logger),
		importExport: NewImportExportService(deps.Cache, deps.Validator, logger),
		questionSet:  NewQuestionSetService(deps.Repository, deps.Cache, deps.Publisher, deps.Validator, deps.FinalCacheTTL, logger),
	}
}

func (m *serviceManager) Parse() ParseService               { return m.parse }
func (m *serviceManager) Cache() CacheService               { return m.cache }
func (m *serviceManager) ImportExport() ImportExportService { return m.importExport }
func (m *serviceManager) QuestionSet() QuestionSetService   { return m.questionSet }
