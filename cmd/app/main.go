package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wichananm65/page-flow-backend/internal/book"
	"github.com/wichananm65/page-flow-backend/internal/cart"
	"github.com/wichananm65/page-flow-backend/internal/events"
	"github.com/wichananm65/page-flow-backend/internal/infrastructure/config"
	"github.com/wichananm65/page-flow-backend/internal/infrastructure/store"
	"github.com/wichananm65/page-flow-backend/internal/interface/http/router"
	"github.com/wichananm65/page-flow-backend/internal/logging"
	"github.com/wichananm65/page-flow-backend/internal/order"
	"github.com/wichananm65/page-flow-backend/internal/session"
	"github.com/wichananm65/page-flow-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	stores, err := store.Open(startCtx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer stores.Close(context.Background())

	publisher, closePublisher := mustPublisher(cfg, logger)
	defer closePublisher()

	sessions := session.NewManager(stores.Sessions, cfg.JWTSecret, cfg.SessionTTL)

	bookService := book.NewService(stores.Books)
	orderService := order.NewService(stores.Orders, publisher)
	cartService := cart.NewService(stores.Carts, bookService, orderService)
	userService := user.NewService(stores.Users, user.Options{
		AdminEmails:           cfg.AdminEmails,
		RejectSharedPasswords: cfg.RejectSharedPasswords,
	})

	if cfg.SeedCatalog {
		n, err := bookService.Seed(context.Background(), book.SampleCatalog)
		if err != nil {
			logger.Warn("seed catalog", zap.Error(err))
		} else if n > 0 {
			logger.Info("seeded catalog", zap.Int("books", n))
		}
	}

	app := router.New(router.Config{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Session:     sessions.Middleware(),
	},
		user.NewHandler(userService, sessions),
		book.NewHandler(bookService),
		cart.NewHandler(cartService),
		order.NewHandler(orderService),
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("addr", cfg.Addr), zap.String("store", cfg.StoreDriver))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}

// mustPublisher connects to RabbitMQ when RABBITMQ_URL is set. Without it
// order events are dropped.
func mustPublisher(cfg config.Config, logger *zap.Logger) (events.Publisher, func()) {
	if cfg.RabbitMQURL == "" {
		logger.Info("RABBITMQ_URL not set, order events are disabled")
		return events.Noop{}, func() {}
	}
	pool, err := events.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQExchange, cfg.ChannelPoolSize, logger)
	if err != nil {
		logger.Fatal("connect rabbitmq", zap.Error(err))
	}
	return events.NewAMQPPublisher(pool), func() {
		if err := pool.Close(); err != nil {
			logger.Warn("close rabbitmq", zap.Error(err))
		}
	}
}
