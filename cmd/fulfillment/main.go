package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mresende/storefront/internal/fulfillment"
	"github.com/mresende/storefront/internal/messaging"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers == "" {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}

	storefrontURL := os.Getenv("STOREFRONT_URL")
	if storefrontURL == "" {
		logger.Error("STOREFRONT_URL environment variable is required")
		os.Exit(1)
	}

	notifyURL := os.Getenv("NOTIFY_SERVICE_URL")
	if notifyURL == "" {
		logger.Error("NOTIFY_SERVICE_URL environment variable is required")
		os.Exit(1)
	}

	brokers := strings.Split(kafkaBrokers, ",")

	placedConsumer := messaging.NewConsumer(brokers, "order.placed", "fulfillment-worker")
	defer func() { _ = placedConsumer.Close() }()

	shipmentConsumer := messaging.NewConsumer(brokers, "order.shipment", "fulfillment-worker")
	defer func() { _ = shipmentConsumer.Close() }()

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	handler := fulfillment.NewHandler(storefrontURL, notifyURL, httpClient, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting fulfillment worker", "brokers", brokers)

	errCh := make(chan error, 2)
	go func() { errCh <- placedConsumer.Consume(ctx, handler.HandleOrderPlaced) }()
	go func() { errCh <- shipmentConsumer.Consume(ctx, handler.HandleShipment) }()

	if err := <-errCh; err != nil {
		if ctx.Err() == context.Canceled {
			logger.Info("consumer stopped")
			return
		}
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}
