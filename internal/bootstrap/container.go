package bootstrap

import (
	"context"
	"fmt"
	"log"

	"notes-app/internal/config"
	"notes-app/internal/controller"
	"notes-app/internal/handler"
	"notes-app/internal/pkg/logger"
	"notes-app/internal/repository/memory"
	"notes-app/internal/repository/unitofwork"
	"notes-app/internal/service"
	internalWS "notes-app/internal/websocket"
	pktNats "notes-app/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController controller.INoteController

	// Handlers
	NoteEventsHandler *handler.NoteEventsHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *internalWS.Hub

	Logger    logger.ILogger
	StoreName string

	db      *gorm.DB
	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	rdb     *redis.Client
}

// NewContainer wires the API. A nil db selects the in-memory store.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	return NewContainerWithLogger(db, cfg, sysLogger)
}

func NewContainerWithLogger(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	// 1. Store
	var uowFactory unitofwork.RepositoryFactory
	storeName := "postgres"
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		uowFactory = unitofwork.NewMemoryRepositoryFactory(memory.NewNoteStore())
		storeName = "memory"
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 NATS export (optional)
	var natsPub *pktNats.Publisher
	var forwarder service.EventForwarder
	if cfg.Events.NatsURL != "" {
		p, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = p
			forwarder = p
		}
	}

	// 2.6 Redis relay for the websocket hub (optional)
	var rdb *redis.Client
	if cfg.Events.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.Events.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.Events.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// 2.7 WebSocket Hub
	wsHub := internalWS.NewHub(rdb, sysLogger)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.Topic, sysLogger, forwarder, wsHub)
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)

	// 4. Controllers & Handlers
	noteController := controller.NewNoteController(noteService)
	noteEventsHandler := handler.NewNoteEventsHandler(wsHub, sysLogger)

	return &Container{
		NoteController:    noteController,
		NoteEventsHandler: noteEventsHandler,
		ConsumerService:   consumerService,
		WebSocketHub:      wsHub,
		Logger:            sysLogger,
		StoreName:         storeName,
		db:                db,
		pubSub:            pubSub,
		natsPub:           natsPub,
		rdb:               rdb,
	}
}

// Ping checks the store is reachable.
func (c *Container) Ping(ctx context.Context) error {
	if c.db == nil {
		return nil
	}

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the event bus, the NATS connection and Redis.
func (c *Container) Close() error {
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	// stdout cannot always be synced; that is not a shutdown failure
	_ = c.Logger.Sync()
	return c.pubSub.Close()
}
