package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yieldcurve/internal/config"
	"yieldcurve/internal/handler"
	"yieldcurve/internal/resolver"
	"yieldcurve/internal/service"
	"yieldcurve/internal/sources"
	"yieldcurve/pkg/tracing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "yieldcurve/docs"
)

const serviceName = "yieldcurve-server"

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	loadCatalogFunc        = sources.Default
	initTracerFunc         = tracing.InitTracer
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	exitFunc               = os.Exit
)

// @title           Yield Curve API
// @version         1.0
// @description     US Treasury vs Government of Canada yield curve comparison.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		Prefix:          "server",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		logger.Error("failed to initialize tracer", "err", err)
		exitFunc(1)
		return
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("error shutting down tracer provider", "err", err)
		}
	}()

	cat, err := loadCatalogFunc()
	if err != nil {
		logger.Error("failed to load source catalog", "err", err)
		exitFunc(1)
		return
	}

	settings := cfg.ProviderSettings()
	us := resolver.NewUS(tracer, logger, cat, cfg.FREDAPIKey, settings)
	ca := resolver.NewCA(tracer, logger, cat, settings)
	logger.Info("sources configured", "us", us.Sources(), "ca", ca.Sources())

	compareService := service.NewCompareService(tracer, logger, us, ca)
	h := newHandlerFunc(tracer, compareService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(serviceName))

	h.RegisterRoutes(r, cfg.ServerAPIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)

	// A listener that fails wakes the shutdown path itself.
	serveErr := make(chan error, 1)
	start := startHTTPServerFunc
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		err := start(srv)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case quit <- syscall.SIGTERM:
			default:
			}
		}
		serveErr <- err
	}()

	waitForSignalFunc(quit)
	logger.Info("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}

	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("listen failed", "addr", srv.Addr, "err", err)
		exitFunc(1)
		return
	}
	logger.Info("server exiting")
}
