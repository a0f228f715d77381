// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mkravets/factlens/internal/model"
	"github.com/mkravets/factlens/internal/store"
)

// Analyzer runs one fact-check; the pipeline satisfies it
type Analyzer interface {
	AnalyzeURL(ctx context.Context, url string) (*model.ScoredReport, error)
}

// Reports is the persistence surface the API needs
type Reports interface {
	SaveReport(ctx context.Context, report *model.ScoredReport) error
	ListRecent(ctx context.Context, limit int) ([]store.HistoryEntry, error)
	GetByID(ctx context.Context, runID string) (*model.ScoredReport, error)
}

// Server is the HTTP API around the engine
type Server struct {
	analyzer Analyzer
	reports  Reports
	engine   *gin.Engine
	log      *logrus.Entry
}

// New creates the API server and registers its routes
func New(analyzer Analyzer, reports Reports) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		analyzer: analyzer,
		reports:  reports,
		engine:   gin.New(),
		log:      logrus.WithField("component", "server"),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/analyze", s.handleAnalyze)
	api.GET("/history", s.handleHistory)
	api.GET("/report/:id", s.handleReport)
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until the listener fails
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("serving API")
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type analyzeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid url is required"})
		return
	}

	report, err := s.analyzer.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		s.log.WithError(err).WithField("url", req.URL).Error("analysis failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := s.reports.SaveReport(c.Request.Context(), report); err != nil {
		// The analysis succeeded; persistence trouble should not hide the
		// result from the caller.
		s.log.WithError(err).Error("failed to persist report")
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleHistory(c *gin.Context) {
	entries, err := s.reports.ListRecent(c.Request.Context(), 50)
	if err != nil {
		s.log.WithError(err).Error("history query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	if entries == nil {
		entries = []store.HistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": entries})
}

func (s *Server) handleReport(c *gin.Context) {
	report, err := s.reports.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		s.log.WithError(err).Error("report query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report unavailable"})
		return
	}
	c.JSON(http.StatusOK, report)
}
