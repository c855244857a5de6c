package bootstrap

import (
	"context"
	"log"
	"time"

	"flow-validation-be/internal/config"
	"flow-validation-be/internal/controller"
	"flow-validation-be/internal/pkg/logger"
	"flow-validation-be/internal/repository/implementation"
	"flow-validation-be/internal/service"
	"flow-validation-be/pkg/correlation"
	"flow-validation-be/pkg/render"
	"flow-validation-be/pkg/validation"
	"flow-validation-be/pkg/validation/checks"

	pktNats "flow-validation-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ReportController controller.IReportController

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService

	HealthService service.IHealthService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. Validation Engine
	correlationStore := correlation.NewRedisStore(rdb, time.Duration(cfg.Validation.CorrelationTTL)*time.Second)

	registry := validation.NewRegistry()
	for _, domain := range cfg.Validation.Domains {
		checks.RegisterAll(registry, domain)
	}
	log.Printf("[INFO] Validator registry configured for domains: %v", registry.Domains())

	rules := validation.Rules{
		EnforceGPSPrecision:         cfg.Validation.EnforceGPSPrecision,
		EnforceBreakupTitles:        cfg.Validation.EnforceBreakupTitles,
		EnforceUniqueFulfillmentIDs: cfg.Validation.EnforceUniqueFulfillmentIDs,
		EnforceParentStopLinkage:    cfg.Validation.EnforceParentStopLinkage,
	}

	dispatcher := validation.NewDispatcher(registry, correlationStore, rules, sysLogger)
	sequenceValidator := validation.NewSequenceValidator(dispatcher, sysLogger)

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		log.Fatalf("[FATAL] Failed to parse report template: %v", err)
	}

	// 4. Repositories & Services
	payloadRepo := implementation.NewPayloadRepository(db)

	publisherService := service.NewPublisherService(cfg.Validation.ReportTopic, pubSub)

	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogPath)
	auditService := service.NewAuditService(pubSub, cfg.Validation.ReportTopic, auditLogger)

	reportService := service.NewReportService(
		payloadRepo,
		sequenceValidator,
		renderer,
		publisherService,
		natsPub,
		sysLogger,
	)

	utilityService := service.NewUtilityService(
		payloadRepo,
		cfg.Validation.ServiceURL,
		time.Duration(cfg.Validation.ServiceTimeout)*time.Second,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		ReportController: controller.NewReportController(reportService, utilityService),
		AuditService:     auditService,
		HealthService:    service.NewHealthService(db, rdb),
	}
}
