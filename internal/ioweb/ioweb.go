// Package ioweb serves the capture trigger used by the ESP32 controller
// together with health and metrics endpoints.
package ioweb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/capture"
	"github.com/mpsense/sampler/pkg/errcode"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Capturer runs a capture unless one is in flight already.
type Capturer interface {
	TryCapture(ctx context.Context) (capture.Outcome, error)
}

// Server wraps the HTTP trigger.
type Server struct {
	port     int
	capturer Capturer
	router   *gin.Engine
}

// New creates Server and its routes.
func New(port int, capturer Capturer) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLog(), gzip.Gzip(gzip.DefaultCompression))

	res := &Server{port: port, capturer: capturer, router: router}
	router.POST("/capture", res.capture)
	router.GET("/health", health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return res
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

type outcomeResponse struct {
	Status string `json:"status"`
	capture.Outcome
	Error string `json:"error,omitempty"`
}

// capture runs the pipeline. The capture is detached from the request, a
// dropped trigger connection does not abort a half-written sample.
func (s *Server) capture(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())
	out, err := s.capturer.TryCapture(ctx)
	if err != nil {
		status := http.StatusInternalServerError
		var gnErr *gn.Error
		if errors.As(err, &gnErr) && gnErr.Code == errcode.BusyError {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":    "failed",
			"captureID": out.ID.String(),
			"error":     err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, outcomeResponse{Status: out.Status(), Outcome: out})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", s.port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return ServerError(s.port, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return ServerError(s.port, err)
	}
	return nil
}
