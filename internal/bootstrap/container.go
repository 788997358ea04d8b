package bootstrap

import (
	"context"
	"log"

	"examgen-be/internal/config"
	"examgen-be/internal/constant"
	"examgen-be/internal/controller"
	"examgen-be/internal/pkg/logger"
	"examgen-be/internal/repository/memory"
	"examgen-be/internal/repository/unitofwork"
	"examgen-be/internal/service"
	"examgen-be/pkg/compile"
	"examgen-be/pkg/embedding"
	"examgen-be/pkg/gateway"
	"examgen-be/pkg/llm"
	"examgen-be/pkg/llm/factory"
	"examgen-be/pkg/persist"
	"examgen-be/pkg/pipeline"
	"examgen-be/pkg/render"
	"examgen-be/pkg/retrieval"

	pktNats "examgen-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GenerationController controller.IGenerationController
	TemplateController   controller.ITemplateController
	ProblemController    controller.IProblemController
	SearchController     controller.ISearchController
	CompileController    controller.ICompileController
	ArtifactController   controller.IArtifactController
	ProxyController      controller.IProxyController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Outbound Gateway
	// Every remote collaborator is reached through this single chokepoint so
	// timeout and retry behavior stays uniform.
	gw := gateway.New(gateway.Options{
		Timeout: cfg.Gateway.Timeout,
		Policy: gateway.Policy{
			MaxRetries:  cfg.Gateway.MaxRetries,
			BackoffBase: cfg.Gateway.BackoffBase,
			RetryOn:     gateway.DefaultPolicy().RetryOn,
		},
	}, nil)
	gwOpts := gateway.Options{Timeout: cfg.Gateway.Timeout}

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (artifact store)
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
	artifactStore := compile.NewArtifactStore(rdb, cfg.App.ArtifactTTL)

	// 4. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(gw, cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)

	llmProvider, err := factory.NewLLMProvider(gw, cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.LLMBaseURL, cfg.Keys.Groq)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Pipeline collaborators. Render, problem and compile default to this
	// server's own surface; retrieval may be pointed elsewhere.
	renderer := render.NewClient(gw, cfg.Upstream.RenderBaseURL, gwOpts)
	retriever := retrieval.NewClient(gw, cfg.Upstream.RetrievalBaseURL, retrieval.DefaultWeights(), gwOpts)
	completer := llm.NewCompleter(llmProvider, constant.PresetInstructions)
	persister := persist.NewClient(gw, cfg.Upstream.ProblemBaseURL)
	compiler := compile.NewClient(gw, cfg.Upstream.CompileBaseURL, artifactStore)

	orchestrator := pipeline.NewOrchestrator(renderer, retriever, completer, persister, compiler, nil)
	sessionRepo := memory.NewSessionRepository()

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedProblemTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedProblemTopic,
		uowFactory,
		embeddingProvider,
	)

	searchService := service.NewSearchService(uowFactory, embeddingProvider)
	templateService := service.NewTemplateService(uowFactory, searchService)
	problemService := service.NewProblemService(uowFactory, publisherService, natsPub)
	compileService := service.NewCompileService(artifactStore)
	generationService := service.NewGenerationService(orchestrator, sessionRepo, uowFactory, natsPub)

	// 7. Controllers
	return &Container{
		GenerationController: controller.NewGenerationController(generationService),
		TemplateController:   controller.NewTemplateController(templateService),
		ProblemController:    controller.NewProblemController(problemService),
		SearchController:     controller.NewSearchController(searchService),
		CompileController:    controller.NewCompileController(compileService),
		ArtifactController:   controller.NewArtifactController(artifactStore),
		ProxyController:      controller.NewProxyController(gw, cfg.Upstream.ProxyBaseURL, gwOpts),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
