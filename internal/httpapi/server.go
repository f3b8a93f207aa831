package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venueops/weather-pipeline/internal/config"
)

// Runner executes the weather pipeline for one venue and date range.
type Runner interface {
	Run(ctx context.Context, venueID string, start, end time.Time) (int, error)
}

// Server bundles the router and the pipeline runner.
type Server struct {
	cfg    config.Config
	runner Runner
	engine *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, runner Runner) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	server := &Server{cfg: cfg, runner: runner, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.GET("/weather", s.handleWeather)
}

// weatherQuery holds the trigger parameters. Dates use the calendar form the
// archive API expects; the range is inclusive on both ends.
type weatherQuery struct {
	VenueID   string    `form:"venue_id" binding:"required"`
	StartDate time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1" binding:"required"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1" binding:"required"`
}

func (s *Server) handleWeather(c *gin.Context) {
	var q weatherQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "detail": err.Error()})
		return
	}

	count, err := s.runner.Run(c.Request.Context(), q.VenueID, q.StartDate, q.EndDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "rows_loaded": count})
}
