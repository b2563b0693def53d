package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsroom/internal/domain"
	"newsroom/internal/ports"
	"newsroom/internal/usecase"
)

const adminTokenHeader = "X-Admin-Token"

// Deps wires the core services into the HTTP shell.
type Deps struct {
	Pipeline   *usecase.Pipeline
	Feeds      *usecase.FeedService
	Stats      *usecase.StatsService
	Documents  ports.Documents
	AdminToken string
	Logger     *slog.Logger
}

// Server is the JSON presentation shell in front of the digest pipeline.
type Server struct {
	echo       *echo.Echo
	pipeline   *usecase.Pipeline
	feeds      *usecase.FeedService
	stats      *usecase.StatsService
	documents  ports.Documents
	adminToken string
	logger     *slog.Logger
}

// New assembles the router.
func New(deps Deps) *Server {
	s := &Server{
		pipeline:   deps.Pipeline,
		feeds:      deps.Feeds,
		stats:      deps.Stats,
		documents:  deps.Documents,
		adminToken: deps.AdminToken,
		logger:     deps.Logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", s.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/digests", s.listDigests)
	api.GET("/digests/:date", s.getDigest)
	api.GET("/feeds", s.listFeeds)
	api.GET("/stats", s.getStats)
	api.POST("/visits", s.recordVisit)

	admin := api.Group("", s.requireAdmin)
	admin.POST("/feeds", s.addFeed)
	admin.DELETE("/feeds", s.removeFeed)
	admin.POST("/runs", s.triggerRun)

	s.echo = e
	return s
}

// Start serves until Shutdown is called.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// requireAdmin guards mutating routes with a shared token. An empty
// configured token leaves the routes open, matching the original
// single-operator deployment without a password.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.adminToken == "" {
			return next(c)
		}
		given := c.Request().Header.Get(adminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(s.adminToken)) != 1 {
			return c.JSON(http.StatusUnauthorized, errorBody("admin token required"))
		}
		return next(c)
	}
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listDigests(c echo.Context) error {
	history, err := s.documents.LoadHistory(c.Request().Context())
	if err != nil {
		s.warn("load history", "error", err)
	}

	dates := make([]string, 0, len(history))
	for date := range history {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	return c.JSON(http.StatusOK, map[string]any{"dates": dates})
}

func (s *Server) getDigest(c echo.Context) error {
	date := c.Param("date")
	if _, err := time.Parse(domain.DateKeyFormat, date); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("date must be YYYY-MM-DD"))
	}

	history, err := s.documents.LoadHistory(c.Request().Context())
	if err != nil {
		s.warn("load history", "error", err)
	}

	digest, ok := history[date]
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody("no digest for "+date))
	}

	return c.JSON(http.StatusOK, map[string]string{"date": date, "digest": digest})
}

func (s *Server) listFeeds(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"feeds": s.feeds.List(c.Request().Context())})
}

type addFeedRequest struct {
	URL string `json:"url"`
}

func (s *Server) addFeed(c echo.Context) error {
	var req addFeedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	switch err := s.feeds.Add(c.Request().Context(), req.URL); {
	case err == nil:
		return c.JSON(http.StatusCreated, map[string]string{"url": req.URL})
	case errors.Is(err, usecase.ErrInvalidFeedURL):
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, usecase.ErrDuplicateFeed):
		return c.JSON(http.StatusConflict, errorBody(err.Error()))
	default:
		s.warn("add feed", "error", err)
		return c.JSON(http.StatusBadGateway, errorBody("store unavailable"))
	}
}

func (s *Server) removeFeed(c echo.Context) error {
	raw := c.QueryParam("url")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, errorBody("url query parameter required"))
	}

	switch err := s.feeds.Remove(c.Request().Context(), raw); {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, usecase.ErrUnknownFeed):
		return c.JSON(http.StatusNotFound, errorBody(err.Error()))
	default:
		s.warn("remove feed", "error", err)
		return c.JSON(http.StatusBadGateway, errorBody("store unavailable"))
	}
}

type runResponse struct {
	usecase.RunResult
	Checkpoints []usecase.Progress `json:"checkpoints"`
}

func (s *Server) triggerRun(c echo.Context) error {
	var checkpoints []usecase.Progress
	result, err := s.pipeline.Run(c.Request().Context(), time.Now(), func(p usecase.Progress) {
		checkpoints = append(checkpoints, p)
	})

	articlesCollected.Add(float64(result.Articles))

	switch {
	case err == nil:
		runsTotal.WithLabelValues("ok").Inc()
		return c.JSON(http.StatusOK, runResponse{RunResult: result, Checkpoints: checkpoints})
	case errors.Is(err, usecase.ErrNoFeeds):
		runsTotal.WithLabelValues("no_feeds").Inc()
		return c.JSON(http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, usecase.ErrNoArticles):
		runsTotal.WithLabelValues("no_articles").Inc()
		return c.JSON(http.StatusConflict, errorBody(err.Error()))
	default:
		runsTotal.WithLabelValues("error").Inc()
		s.warn("pipeline run", "error", err)
		return c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
}

func (s *Server) getStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.stats.Current(c.Request().Context()))
}

func (s *Server) recordVisit(c echo.Context) error {
	stats, err := s.stats.RecordVisit(c.Request().Context())
	if err != nil {
		s.warn("record visit", "error", err)
	} else {
		visitsRecorded.Inc()
	}
	return c.JSON(http.StatusOK, stats)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func (s *Server) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
