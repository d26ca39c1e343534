package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/transport-catalogue/config"
	"github.com/theoremus-urban-solutions/transport-catalogue/handler"
)

// maxBodyBytes bounds the size of an input document.
const maxBodyBytes = 32 << 20

type Server struct {
	cfg    config.ServerConfig
	opts   []handler.Option
	loaded *handler.Handler
	engine *gin.Engine
}

type Option func(*Server)

// WithCatalogue serves stat requests and the map of a catalogue loaded at
// startup.
func WithCatalogue(h *handler.Handler) Option {
	return func(s *Server) { s.loaded = h }
}

// WithHandlerOptions passes options to the handlers created per input
// document.
func WithHandlerOptions(opts ...handler.Option) Option {
	return func(s *Server) { s.opts = append(s.opts, opts...) }
}

func New(cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery(), requestID(), accessLog())

	api := e.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/requests", s.handleRequests)
	api.POST("/map.svg", s.handleRenderMap)
	api.POST("/stat", s.handleStat)
	api.GET("/map.svg", s.handleLoadedMap)
	s.engine = e
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	logrus.Infof("server listening on %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutdown signal received")
	timeout := time.Duration(s.cfg.ShutdownTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logrus.Info("server shut down successfully")
	return <-errc
}
