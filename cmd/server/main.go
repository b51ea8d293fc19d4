package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"

	"github.com/rl1809/food-order/internal/adapter/gateway"
	"github.com/rl1809/food-order/internal/adapter/handler"
	"github.com/rl1809/food-order/internal/adapter/handler/pb"
	"github.com/rl1809/food-order/internal/adapter/messaging"
	"github.com/rl1809/food-order/internal/adapter/storage"
	"github.com/rl1809/food-order/internal/adapter/storage/memory"
	"github.com/rl1809/food-order/internal/adapter/token"
	"github.com/rl1809/food-order/internal/config"
	"github.com/rl1809/food-order/internal/core/service"
	"github.com/rl1809/food-order/internal/logger"
	"github.com/rl1809/food-order/internal/port"
	"github.com/rl1809/food-order/internal/telemetry"
)

type repositories struct {
	catalog  port.CatalogRepository
	orders   port.OrderRepository
	accounts port.AccountRepository
	sessions port.SessionStore
	flashes  port.FlashStore
	close    func()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Bool("seed", false, "insert demo accounts and catalog")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog := logger.New(os.Stdout, cfg.Telemetry.ServiceName, cfg.Log.Level)
	slog.SetDefault(appLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, os.Stderr)
		if err != nil {
			log.Fatalf("failed to set up tracing: %v", err)
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				appLog.Warn("tracer shutdown failed", slog.String("error", err.Error()))
			}
		}()
	}

	repos, err := openStorage(ctx, cfg, appLog, *seed)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	// Event publishing
	var publisher port.EventPublisher = messaging.NewLogPublisher(appLog)
	var rabbit *messaging.RabbitPublisher
	if cfg.RabbitMQ.URL != "" {
		rabbit, err = messaging.DialRabbit(cfg.RabbitMQ.URL, appLog)
		if err != nil {
			log.Fatalf("failed to connect rabbitmq: %v", err)
		}
		publisher = rabbit
		appLog.Info("connected to rabbitmq")
	}

	events := service.NewEventDispatcher(cfg.Events.QueueSize, appLog)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Events.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			service.PublishLoop(id, events.Events(), publisher, appLog)
		}(i)
	}
	appLog.Info("started event workers", slog.Int("count", cfg.Events.Workers))

	// Services
	tokens := token.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	rp := gateway.NewRazorpayClient(cfg.Payments.KeyID, cfg.Payments.KeySecret, cfg.Payments.BaseURL)

	authService := service.NewAuthService(repos.accounts, tokens)
	paymentService := service.NewPaymentService(repos.orders, rp, events, appLog, cfg.Payments.Currency)
	fulfillmentService := service.NewFulfillmentService(repos.orders, events, appLog, cfg.Orders.StrictTransitions)

	// gRPC server
	grpcHandler := handler.NewGRPCHandler(authService, paymentService, fulfillmentService, appLog)
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpcHandler.AuthInterceptor))
	pb.RegisterOrderOpsServer(grpcServer, grpcHandler)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		appLog.Info("gRPC server listening", slog.String("addr", cfg.GRPC.Addr))
		if err := grpcServer.Serve(lis); err != nil {
			appLog.Error("gRPC server error", slog.String("error", err.Error()))
		}
	}()

	// HTTP server
	httpHandler := handler.NewHTTPHandler(handler.Services{
		Auth:        authService,
		Catalog:     service.NewCatalogService(repos.catalog),
		Cart:        service.NewCartService(repos.catalog, repos.sessions),
		Orders:      service.NewOrderService(repos.orders, repos.sessions, events, appLog, cfg.Orders.FallbackAddress),
		Payments:    paymentService,
		Fulfillment: fulfillmentService,
		Flashes:     repos.flashes,
	}, appLog, cfg.HTTP.SecureCookies)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           otelhttp.NewHandler(httpHandler.Routes(), "http.server"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("HTTP server listening", slog.String("addr", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("HTTP server error", slog.String("error", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLog.Warn("HTTP shutdown", slog.String("error", err.Error()))
	}
	appLog.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	appLog.Info("gRPC server stopped")

	// drain queued events before closing the broker
	events.Close()
	wg.Wait()
	appLog.Info("event workers stopped")

	if rabbit != nil {
		if err := rabbit.Close(); err != nil {
			appLog.Warn("rabbitmq close", slog.String("error", err.Error()))
		}
	}
	repos.close()
	appLog.Info("connections closed")
}

func openStorage(ctx context.Context, cfg *config.Config, appLog *slog.Logger, seed bool) (*repositories, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		store := memory.NewStore()
		if seed {
			if err := memory.Seed(store); err != nil {
				return nil, err
			}
			appLog.Info("seeded in-memory store")
		}
		return &repositories{
			catalog: store, orders: store, accounts: store,
			sessions: store, flashes: store,
			close: func() {},
		}, nil
	}

	db, err := sql.Open("mysql", cfg.Storage.MySQLDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	appLog.Info("connected to mysql")

	if err := storage.Migrate(ctx, db, appLog); err != nil {
		db.Close()
		return nil, err
	}
	if seed {
		if err := storage.Seed(ctx, db, appLog); err != nil {
			db.Close()
			return nil, err
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Storage.RedisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		db.Close()
		return nil, err
	}
	appLog.Info("connected to redis")

	mysqlAdapter := storage.NewMySQLAdapter(db)
	redisAdapter := storage.NewRedisAdapter(rdb, cfg.Storage.SessionTTL)
	return &repositories{
		catalog:  mysqlAdapter,
		orders:   mysqlAdapter,
		accounts: mysqlAdapter,
		sessions: redisAdapter,
		flashes:  redisAdapter,
		close: func() {
			rdb.Close()
			db.Close()
		},
	}, nil
}
