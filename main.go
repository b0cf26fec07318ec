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

	"tiktok-planner/infrastructure/clients/tikwm"
	"tiktok-planner/infrastructure/configuration"
	"tiktok-planner/infrastructure/logger"
	httpHandler "tiktok-planner/interfaces/http"
	"tiktok-planner/interfaces/middleware"
	"tiktok-planner/server"
	"tiktok-planner/usecase"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	if os.Getenv("ENV") == "production" || os.Getenv("ENV") == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := InitiateServer(configuration.C)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Server initialization failed")
		os.Exit(1)
	}

	port := configuration.C.App.Port
	logger.GetLogger().
		WithField("port", port).
		WithField("upstream", configuration.C.TikWM.Endpoint).
		Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case sig := <-interrupt:
		logger.GetLogger().WithField("signal", sig.String()).Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
	logger.GetLogger().Info("Application stopped")
}

// InitiateServer wires the search proxy: tikwm client, usecase, handlers and
// router.
func InitiateServer(c configuration.Config) (*gin.Engine, error) {
	searchClient, err := tikwm.NewTikWMClient(&tikwm.Config{
		Endpoint:  c.TikWM.Endpoint,
		UserAgent: c.TikWM.Header.UserAgent,
		Accept:    c.TikWM.Header.Accept,
		Referer:   c.TikWM.Header.Referer,
		Timeout:   time.Duration(c.TikWM.TimeoutSeconds) * time.Second,
	}, nil)
	if err != nil {
		return nil, err
	}

	searchUsecase := usecase.NewSearchUsecase(searchClient, c.Search.DefaultCount, c.Search.DefaultCursor)
	searchHandler := httpHandler.NewSearchHandler(searchUsecase)
	healthHandler := httpHandler.NewHealthHandler()

	var limiter *middleware.RateLimiter
	if c.RateLimit.RequestsPerMinute > 0 {
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: c.RateLimit.RequestsPerMinute,
			Burst:             c.RateLimit.Burst,
		})
	} else {
		logger.GetLogger().Info("Rate limiting disabled")
	}

	return server.InitiateRouter(searchHandler, healthHandler, server.RouterConfig{
		AllowOrigins: c.App.AllowOrigins,
		RateLimiter:  limiter,
	}), nil
}
