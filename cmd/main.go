package main

import (
	"net/http"

	"go.uber.org/zap"

	couponapp "github.com/onestopfashion897-star/onestopfashion-backend/application/coupon"
	orderapp "github.com/onestopfashion897-star/onestopfashion-backend/application/order"
	productapp "github.com/onestopfashion897-star/onestopfashion-backend/application/product"
	userapp "github.com/onestopfashion897-star/onestopfashion-backend/application/user"
	"github.com/onestopfashion897-star/onestopfashion-backend/cmd/config"
	mongoclient "github.com/onestopfashion897-star/onestopfashion-backend/cmd/mongo"
	redisclient "github.com/onestopfashion897-star/onestopfashion-backend/cmd/redis"
	_ "github.com/onestopfashion897-star/onestopfashion-backend/docs"
	couponRepo "github.com/onestopfashion897-star/onestopfashion-backend/repository/coupon"
	orderRepo "github.com/onestopfashion897-star/onestopfashion-backend/repository/order"
	productRepo "github.com/onestopfashion897-star/onestopfashion-backend/repository/product"
	redisRepo "github.com/onestopfashion897-star/onestopfashion-backend/repository/redis"
	userRepo "github.com/onestopfashion897-star/onestopfashion-backend/repository/user"
	"github.com/onestopfashion897-star/onestopfashion-backend/thirdparty/rabbitmq"
	"github.com/onestopfashion897-star/onestopfashion-backend/transport"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/logger"
)

// @title ONESTOPFASHION API
// @version 1.0
// @description Storefront and order management API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to MongoDB
	if err := mongoclient.New(cfg); err != nil {
		logger.Fatal("err connect mongo", zap.Error(err))
	}
	defer func() {
		_ = mongoclient.Close()
	}()
	db := mongoclient.Database(cfg)

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Initialize RabbitMQ publisher for the stock reconciliation outbox.
	// Checkout degrades to log-only when the broker is unreachable.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq, stock adjustments will not be queued", zap.Error(err))
		publisher = nil
	} else {
		defer func() {
			_ = publisher.Close()
		}()
	}

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	CouponRepo := couponRepo.NewCouponRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ProductApp := productapp.NewProductApp(ProductRepo)
	CouponApp := couponapp.NewCouponApp(CouponRepo)
	OrderApp := orderapp.NewOrderApp(cfg, OrderRepo, ProductRepo, CouponApp, publisher)

	httpTransport := transport.NewTransport(UserApp, ProductApp, OrderApp, CouponApp, cfg.Internal.APIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
