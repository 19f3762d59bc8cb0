// Package server exposes the tax engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/itax/internal/aggregation"
	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/extract"
	"github.com/rgehrsitz/itax/internal/repository"
)

const shutdownTimeout = 10 * time.Second

// Server wires the calculator, aggregator and extractor to HTTP routes.
type Server struct {
	cfg        Config
	calc       *calculation.TaxCalculator
	aggregator *aggregation.SalaryAggregator
	extractor  *extract.Extractor
	store      repository.SessionStore
	logger     calculation.Logger
	router     *gin.Engine
}

// New builds a server around store. calc may be nil to use default rules.
func New(cfg Config, calc *calculation.TaxCalculator, store repository.SessionStore) *Server {
	if calc == nil {
		calc = calculation.NewTaxCalculator()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		cfg:        cfg,
		calc:       calc,
		aggregator: aggregation.NewSalaryAggregatorWithRules(calc.Rules()),
		extractor:  extract.NewExtractorWithRules(calc.Rules()),
		store:      store,
		logger:     calculation.NopLogger{},
	}
	s.router = s.routes()
	return s
}

// SetLogger sets the logger used for domain events. Passing nil restores
// the no-op logger.
func (s *Server) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.logger = l
	s.calc.SetLogger(l)
	s.aggregator.SetLogger(l)
	s.extractor.SetLogger(l)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	if s.cfg.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = s.cfg.MaxUploadBytes
	}

	router.GET("/health", s.health)

	api := router.Group("/api/v1")
	{
		tax := api.Group("/tax")
		{
			tax.POST("/calculate", s.calculate)
			tax.GET("/results/:session_id", s.results)
			tax.GET("/summary/:session_id", s.summary)
			tax.POST("/select-regime", s.selectRegime)
		}
		api.POST("/salary/aggregate", s.aggregate)
		api.POST("/documents/extract", s.extractDocument)
	}
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Infof("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
