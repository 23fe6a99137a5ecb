package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danuartha/pairing-app/internal/config"
	"github.com/danuartha/pairing-app/internal/datastore/postgres"
	redisClient "github.com/danuartha/pairing-app/internal/datastore/redis"
	messageRepo "github.com/danuartha/pairing-app/internal/repository/message"
	pairingRepo "github.com/danuartha/pairing-app/internal/repository/pairing"
	swipeRepo "github.com/danuartha/pairing-app/internal/repository/swipe"
	userRepo "github.com/danuartha/pairing-app/internal/repository/user"
	routesV1 "github.com/danuartha/pairing-app/internal/routes/v1"
	authUseCase "github.com/danuartha/pairing-app/internal/usecase/auth"
	"github.com/danuartha/pairing-app/internal/usecase/chat"
	"github.com/danuartha/pairing-app/internal/usecase/match"
	"github.com/danuartha/pairing-app/pkg/jwt"
	"github.com/danuartha/pairing-app/pkg/logger"
	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/labstack/echo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	writer     io.Writer
	httpServer *http.Server
	database   *gorm.DB
	cache      *redis.Client
	log        *zap.Logger
}

// Run wires the whole service from configuration and blocks until ctx is
// cancelled or the listener fails. The first element of args selects the
// environment prefix for configuration keys (dev, test, ...).
func Run(ctx context.Context, w io.Writer, args []string) error {
	env := "dev"
	if len(args) > 0 && args[0] != "" {
		env = args[0]
	}

	cfg, err := config.NewConfig(env)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(cfg.Get("LOG_LEVEL"))
	defer log.Sync()

	jwt.SetSecret(cfg.Get("JWT_SECRET"))

	database, err := postgres.InitializeDB(
		cfg.Get("POSTGRES_USER"),
		cfg.Get("POSTGRES_PASSWORD"),
		cfg.Get("POSTGRES_DB_NAME"),
		cfg.Get("POSTGRES_HOST"),
		cfg.Get("POSTGRES_PORT"),
	)
	if err != nil {
		return err
	}

	cache, err := redisClient.NewRedis(cfg.Get("REDIS_HOST"), cfg.Get("REDIS_PORT"))
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}

	server := NewServer(ctx, w, cfg.Get("PORT"), database, cache, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.StartServer()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func NewServer(ctx context.Context, w io.Writer, port string, database *gorm.DB, cache *redis.Client, log *zap.Logger) *Server {
	e := echo.New()

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	e.Use(requestLogger(log))

	server := &Server{
		writer: w,
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: e,
		},
		database: database,
		cache:    cache,
		log:      log,
	}

	server.RegisterRoutes(e)
	return server
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.handleHealthCheck)

	users := userRepo.New(s.database)
	swipes := swipeRepo.NewSwipeRepo(s.database, s.cache)
	pairings := pairingRepo.NewPairingRepo(s.database)
	messages := messageRepo.NewMessageRepo(s.database)

	authCase := authUseCase.New(users)
	matchCase := match.NewMatchUseCase(users, swipes, pairings, messages)
	chatCase := chat.NewChatUseCase(pairings, messages)

	routesV1.InitV1Routes(e, users, authCase, matchCase, chatCase)
}

func (s *Server) StartServer() error {
	fmt.Fprintf(s.writer, "Server starting on %s\n", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := uuid.NewString()
			c.Response().Header().Set("X-Request-Id", requestID)

			err := next(c)

			log.Info("request",
				zap.String("request_id", requestID),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)),
			)

			return err
		}
	}
}
