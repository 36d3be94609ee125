package bootstrap

import (
	"log"
	"time"

	"campus-assistant-be/internal/config"
	"campus-assistant-be/internal/controller"
	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/internal/repository/contract"
	"campus-assistant-be/internal/repository/memory"
	"campus-assistant-be/internal/repository/redisrepo"
	"campus-assistant-be/internal/service"
	"campus-assistant-be/internal/websocket"
	"campus-assistant-be/pkg/capture"
	"campus-assistant-be/pkg/genai"
	"campus-assistant-be/pkg/imagesearch"

	pktNats "campus-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	AnalyticsService *service.AnalyticsService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	wsLogger := logger.NewIsolatedLogger("websocket.log")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Session Storage
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Invalid REDIS_URL, continuing without Redis: %v", err)
		} else {
			rdb = redis.NewClient(opts)
		}
	}

	var sessionRepo contract.SessionRepository
	if cfg.Chat.SessionStore == "redis" && rdb != nil {
		sessionRepo = redisrepo.NewSessionRepository(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 4. Provider Clients
	timeout := time.Duration(cfg.Chat.ProviderTimeoutSeconds) * time.Second

	textGen := genai.NewGeminiClient(cfg.Keys.GoogleGemini, timeout)

	providers := []imagesearch.Provider{
		imagesearch.NewPixabayProvider(cfg.Keys.Pixabay, timeout),
	}
	if cfg.Keys.Pexels != "" {
		providers = append(providers, imagesearch.NewPexelsProvider(cfg.Keys.Pexels, timeout))
	}
	// The local generator must sit last: it cannot fail and guarantees
	// the chain never resolves empty.
	providers = append(providers, imagesearch.NewPicsumProvider())

	resolverLogger := log.New(log.Writer(), "[IMAGES] ", log.LstdFlags)
	resolver := imagesearch.NewResolver(providers, resolverLogger)

	device := capture.NewWebBridge(cfg.Chat.CaptureEnabled)

	// 5. Infrastructure: NATS analytics bus (best effort)
	var natsPub *pktNats.Publisher
	var analyticsService *service.AnalyticsService
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
		sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			analyticsService = service.NewAnalyticsService(sub, sysLogger)
		}
	}

	// 6. WebSocket Hub
	hub := websocket.NewHub(rdb, wsLogger)
	go hub.Run()

	// 7. Services
	dispatchService := service.NewDispatchService(
		sessionRepo,
		textGen,
		resolver,
		device,
		pubSub,
		natsPub,
		cfg.Chat.ImageCount,
	)

	consumerService := service.NewConsumerService(
		pubSub,
		service.SessionEventsTopic,
		sessionRepo,
		hub,
	)

	// 8. Controllers
	chatController := controller.NewChatController(dispatchService, hub)

	return &Container{
		ChatController:   chatController,
		ConsumerService:  consumerService,
		AnalyticsService: analyticsService,
		WebSocketHub:     hub,
	}
}
