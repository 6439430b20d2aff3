package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/cache"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/http/in"
	postgresapikey "github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/postgres/apikey"
	postgresembedder "github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/postgres/embedder"
	postgresmemory "github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/postgres/memory"
	postgresspace "github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/postgres/space"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/postgres/tx"
	postgresuser "github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/postgres/user"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/queue"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/command"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/query"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mobjectstore"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mpostgres"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mrabbitmq"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mredis"
)

// Service holds everything InitServers assembled: the Fiber app and the
// connection hubs it must drain/close on shutdown.
type Service struct {
	App    *fiber.App
	Config *Config
	Logger mlog.Logger

	db       *mpostgres.Connection
	redis    *mredis.Connection
	rabbitmq *mrabbitmq.Connection
	objStore *mobjectstore.Connection
}

// InitServers loads Config, connects every backing store, wires the
// command/query use cases, and builds the Fiber router.
func InitServers() (*Service, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := mlog.NewZapLogger()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	var tracer trace.Tracer = otel.Tracer(cfg.OtelServiceName)

	ctx := context.Background()

	db := &mpostgres.Connection{
		ConnectionString: cfg.DBConnectionString,
		MigrationsPath:   cfg.DBMigrationsPath,
	}
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	redisConn := &mredis.Connection{ConnectionStringSource: cfg.RedisConnectionString, Logger: logger}
	if err := redisConn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	rabbitConn := &mrabbitmq.Connection{ConnectionStringSource: cfg.RabbitMQConnectionString, Logger: logger}
	if err := rabbitConn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	objConn := &mobjectstore.Connection{
		Endpoint:        cfg.ObjectStoreEndpoint,
		AccessKeyID:     cfg.ObjectStoreAccessKey,
		SecretAccessKey: cfg.ObjectStoreSecretKey,
		UseSSL:          cfg.ObjectStoreUseSSL,
		Logger:          logger,
	}
	if err := objConn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting to object store: %w", err)
	}

	objectStore := mobjectstore.NewStore(objConn)
	if ok, err := objectStore.BucketExists(ctx, cfg.ContentBucket); err != nil {
		return nil, fmt.Errorf("checking content bucket: %w", err)
	} else if !ok {
		if err := objectStore.MakeBucket(ctx, cfg.ContentBucket); err != nil {
			return nil, fmt.Errorf("creating content bucket: %w", err)
		}
	}

	userRepo := postgresuser.NewPostgreSQLRepository(db.Pool)
	apiKeyRepo := postgresapikey.NewPostgreSQLRepository(db.Pool)
	embedderRepo := postgresembedder.NewPostgreSQLRepository(db.Pool)
	spaceRepo := postgresspace.NewPostgreSQLRepository(db.Pool)
	memoryRepo := postgresmemory.NewPostgreSQLRepository(db.Pool)

	cacheRepo := &cache.RedisRepository{Client: redisConn.Client, Logger: logger}
	queueRepo := &queue.RabbitMQProducer{Channel: rabbitConn.Channel, Exchange: cfg.RabbitMQExchange, Logger: logger}

	cmd := &command.UseCase{
		UserRepo:          userRepo,
		ApiKeyRepo:        apiKeyRepo,
		EmbedderRepo:      embedderRepo,
		SpaceRepo:         spaceRepo,
		MemoryRepo:        memoryRepo,
		CacheRepo:         cacheRepo,
		QueueRepo:         queueRepo,
		ObjectStore:       objectStore,
		ContentBucket:     cfg.ContentBucket,
		Transactor:        tx.NewTransactor(db.Pool),
		DefaultEmbedderID: cfg.DefaultEmbedderID,
	}

	qry := &query.UseCase{
		UserRepo:     userRepo,
		ApiKeyRepo:   apiKeyRepo,
		EmbedderRepo: embedderRepo,
		SpaceRepo:    spaceRepo,
		MemoryRepo:   memoryRepo,
	}

	app := in.NewRouter(cmd, qry, logger, tracer)

	return &Service{
		App:      app,
		Config:   cfg,
		Logger:   logger,
		db:       db,
		redis:    redisConn,
		rabbitmq: rabbitConn,
		objStore: objConn,
	}, nil
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then
// drains in-flight requests and closes every connection hub.
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.Logger.Infof("listening on %s", s.Config.ServerAddress)

		if err := s.App.Listen(s.Config.ServerAddress); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.Logger.Info("shutdown signal received, draining in-flight requests")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	timeout := time.Duration(s.Config.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.App.ShutdownWithContext(shutdownCtx); err != nil {
		s.Logger.Errorf("error shutting down http server: %v", err)
	}

	s.db.Close()
	s.rabbitmq.Close()
	_ = s.Logger.Sync()

	return nil
}
