// Package httpapi exposes the session manager as a JSON API with a
// server-sent event stream, for browser front ends.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/session"
)

// EventsPath is the SSE endpoint. It is never compressed.
const EventsPath = "/api/events"

// NewRouter builds the gin engine serving manager.
func NewRouter(manager *session.Manager, cfg domain.ServerConfig, logger domain.Logger) *gin.Engine {
	switch cfg.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{EventsPath})))

	h := NewHandler(manager, logger)
	api := r.Group("/api")
	{
		api.GET("/options", h.Options)
		api.GET("/events", h.Events)

		sess := api.Group("/session")
		{
			sess.POST("", h.CreateSession)
			sess.GET("", h.GetSession)
			sess.DELETE("", h.DeleteSession)
			sess.POST("/end", h.EndSession)
			sess.GET("/report", h.GetReport)
		}

		api.GET("/channels/:channel/messages", h.ListMessages)
		api.POST("/channels/:channel/messages", h.SendMessage)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.ListTasks)
			tasks.POST("/more", h.RequestMoreTasks)
			tasks.PATCH("/:id", h.UpdateTask)
			tasks.POST("/:id/submit", h.SubmitTask)
		}

		api.GET("/docs", h.ListDocs)
		api.POST("/meeting", h.ResolveMeeting)
	}
	return r
}

// requestLogger logs one line per request to the application log.
func requestLogger(logger domain.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		msg := fmt.Sprintf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("http", msg)
			return
		}
		logger.Debug("http", msg)
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	// Request contexts end with ctx so event streams return on shutdown.
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
