package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	appCatalog "github.com/streamline-shop/streamline/internal/application/catalog"
	appOffer "github.com/streamline-shop/streamline/internal/application/offer"
	appOrder "github.com/streamline-shop/streamline/internal/application/order"
	catalogworker "github.com/streamline-shop/streamline/internal/infrastructure/catalog/worker"
	httptransport "github.com/streamline-shop/streamline/internal/infrastructure/http"
	"github.com/streamline-shop/streamline/internal/infrastructure/id"
	"github.com/streamline-shop/streamline/internal/infrastructure/memory"
	orderworker "github.com/streamline-shop/streamline/internal/infrastructure/order/worker"
	"github.com/streamline-shop/streamline/internal/infrastructure/outbox"
	"github.com/streamline-shop/streamline/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	serviceName := getenvDefault("SERVICE_NAME", "streamline")
	env := getenvDefault("ENV", "dev")
	addr := getenvDefault("ADDR", ":8000")
	lowStockThreshold := getenvIntDefault("LOW_STOCK_THRESHOLD", 5)

	baseLogger := logging.MustNewLogger(serviceName, env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	catalogRepo := memory.NewCatalogRepository()
	offerRepo := memory.NewOfferRepository()
	orderRepo := memory.NewOrderRepository()
	idGenerator := id.NewUUIDGenerator()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of accepted order submissions.",
		},
	)
	orderRevenue := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_revenue",
			Help:    "Client-reported order totals.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	lowStockEvents := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "low_stock_events_total",
			Help: "Count of low-stock alerts emitted after order submissions.",
		},
	)
	prometheus.MustRegister(httpRequests, httpDuration, ordersPlaced, orderRevenue, lowStockEvents)

	// In-memory event bus carrying advisory events (audit, low-stock alerts).
	bus := outbox.NewBus(baseLogger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	catalogService := appCatalog.NewService(catalogRepo, idGenerator)
	offerService := appOffer.NewService(offerRepo, idGenerator)
	orderService := appOrder.NewService(catalogRepo, orderRepo, idGenerator, bus, lowStockThreshold)

	orderWorker := orderworker.New(bus, ordersPlaced, orderRevenue)
	catalogWorker := catalogworker.New(bus, lowStockEvents)
	orderWorker.Start()
	catalogWorker.Start()

	handler := httptransport.NewHandler(catalogService, offerService, orderService)
	observe := httptransport.Observability(baseLogger, &httptransport.Metrics{
		Requests: httpRequests,
		Duration: httpDuration,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httptransport.CORS(observe(handler.Router())))

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Error("http_server_error",
				zap.Error(err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		baseLogger.Info("http_server_stopped")
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
