package container

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/config"
	infraCache "bloggerum-backend/internal/infrastructure/cache"
	"bloggerum-backend/internal/infrastructure/database"
	"bloggerum-backend/internal/infrastructure/queue"
	"bloggerum-backend/internal/infrastructure/session"
	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared/middleware"
	"bloggerum-backend/pkg/cache"
	"bloggerum-backend/pkg/jwt"

	"bloggerum-backend/internal/domains/image"
	imageHandler "bloggerum-backend/internal/domains/image/handler"
	imageService "bloggerum-backend/internal/domains/image/service"
	"bloggerum-backend/internal/domains/post"
	postHandler "bloggerum-backend/internal/domains/post/handler"
	postRepo "bloggerum-backend/internal/domains/post/repository"
	postService "bloggerum-backend/internal/domains/post/service"
	"bloggerum-backend/internal/domains/tag"
	tagHandler "bloggerum-backend/internal/domains/tag/handler"
	tagRepo "bloggerum-backend/internal/domains/tag/repository"
	tagService "bloggerum-backend/internal/domains/tag/service"
	"bloggerum-backend/internal/domains/user"
	userHandler "bloggerum-backend/internal/domains/user/handler"
	userRepo "bloggerum-backend/internal/domains/user/repository"
	userService "bloggerum-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies, dùng chung cho cmd/api, cmd/worker và cmd/seed
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Sessions    *session.Store
	Storage     *storage.MinIOStorage
	Processor   *storage.ImageProcessor
	AsynqClient *asynq.Client
	Queue       *queue.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo user.Repository
	PostRepo post.Repository
	TagRepo  tag.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	ImageService image.Service
	TagService   tag.Service
	UserService  user.Service
	PostService  post.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler  *userHandler.UserHandler
	PostHandler  *postHandler.PostHandler
	TagHandler   *tagHandler.TagHandler
	ImageHandler *imageHandler.ImageHandler

	// RequireSession chặn các route private
	RequireSession gin.HandlerFunc
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer build dependency graph theo thứ tự:
// config -> infrastructure -> repositories -> services -> handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("✅ Config loaded")

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: REPOSITORIES
	// ========================================
	c.initRepositories()
	log.Info().Msg("✅ Repositories initialized")

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	c.initServices()
	log.Info().Msg("✅ Services initialized")

	// ========================================
	// STEP 5: HANDLERS
	// ========================================
	c.initHandlers()
	log.Info().Msg("✅ Handlers initialized")

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// ---------- PostgreSQL ----------
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx, c.DB.Pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info().Msg("✅ Database connected")

	// ---------- Redis (cache + session store) ----------
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		// session nằm trên Redis nên không chạy tiếp được
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client)

	c.JWTManager = jwt.NewManager(cfg.Session.Secret)
	c.Sessions = session.NewStore(c.Redis.Client, c.JWTManager, session.Options{
		TTL:           cfg.Session.TTL,
		RememberTTL:   cfg.Session.RememberTTL,
		ResetTokenTTL: cfg.Session.ResetTokenTTL,
	})

	// ---------- Object storage ----------
	c.Storage, err = storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Processor = storage.NewImageProcessor(cfg.Image)
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("✅ Object storage ready")

	// ---------- Task queue ----------
	c.AsynqClient = asynq.NewClient(RedisClientOpt(cfg.Redis))
	c.Queue = queue.NewClient(c.AsynqClient, cfg.Job.DeleteImageRetry)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.ImageService = imageService.NewImageService(c.Storage, c.Processor, c.Queue)
	c.TagService = tagService.NewTagService(c.TagRepo)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.Sessions, // reset tokens
		c.Queue,    // reset email
		c.ImageService,
		userService.Options{
			ClientURL:     c.Config.App.ClientURL,
			ResetTokenTTL: c.Config.Session.ResetTokenTTL,
		},
	)

	c.PostService = postService.NewPostService(c.PostRepo, c.TagService, c.ImageService)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.Sessions, userHandler.CookieOptions{
		Name:   c.Config.Session.CookieName,
		Secure: c.Config.Session.Secure,
	})
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.ImageHandler = imageHandler.NewImageHandler(c.ImageService)

	c.RequireSession = middleware.RequireSession(
		c.Sessions,
		func(ctx context.Context, userID string) (interface{}, error) {
			return c.UserService.GetByID(ctx, userID)
		},
		c.Config.Session.CookieName,
		func(err error) bool { return errors.Is(err, session.ErrSessionNotFound) },
	)
}

// ========================================
// HELPER METHODS
// ========================================

// RedisClientOpt dùng chung cho asynq client, server và scheduler
func RedisClientOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// HealthCheck trả về trạng thái từng store cho /health
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{}
	check := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			status[name] = "DOWN: " + err.Error()
			return
		}
		status[name] = "UP"
	}

	check("database", c.DB.HealthCheck)
	check("redis", c.Redis.HealthCheck)
	check("storage", c.Storage.HealthCheck)
	return status
}

// Cleanup dọn dẹp resources khi shutdown, gọi được cả khi container init dở
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close asynq client")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("✅ Container cleanup completed")
}
