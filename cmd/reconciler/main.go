package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/onestopfashion897-star/onestopfashion-backend/cmd/config"
	"github.com/onestopfashion897-star/onestopfashion-backend/thirdparty/rabbitmq"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/logger"
)

// The reconciler drains the stock-adjustment queue and replays each failed
// decrement against the API's internal reconcile endpoint.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	consumer, err := rabbitmq.NewConsumer(
		cfg.RabbitMQ.Host,
		cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User,
		cfg.RabbitMQ.Password,
		cfg.Internal.APIURL,
		cfg.Internal.APIKey,
	)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer func() {
		_ = consumer.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("stock reconciler running")
	if err := consumer.Start(ctx); err != nil && err != context.Canceled {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}
