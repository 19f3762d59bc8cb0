package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/extract"
	"github.com/rgehrsitz/itax/internal/repository"
)

// pinger is implemented by stores backed by a remote service.
type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) health(c *gin.Context) {
	status, health, store := http.StatusOK, "healthy", "ok"
	if p, ok := s.store.(pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			s.logger.Errorf("session store unreachable: %v", err)
			status, health, store = http.StatusServiceUnavailable, "degraded", "unreachable"
		}
	}
	c.JSON(status, gin.H{
		"status":         health,
		"service":        "itax",
		"financial_year": s.calc.Rules().FinancialYear,
		"session_store":  store,
	})
}

func (s *Server) calculate(c *gin.Context) {
	var record domain.FinancialRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		s.sendError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body", err)
		return
	}

	if ok, problems := s.calc.Validate(record); !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:    codeValidationFailed,
			Message:  "financial data failed validation",
			Code:     http.StatusBadRequest,
			Problems: problems,
		})
		return
	}

	details, err := s.calc.Calculate(record)
	if err != nil {
		s.sendError(c, http.StatusInternalServerError, codeCalculationFailed, "tax calculation failed", err)
		return
	}

	recs, err := s.calc.GetTaxRecommendations(details)
	if err != nil {
		s.logger.Warnf("recommendations failed, using defaults: %v", err)
		recs = calculation.DefaultRecommendations()
	}

	session := &repository.Session{
		Record:          record,
		Details:         *details,
		Recommendations: recs,
	}
	if err := s.store.Save(c.Request.Context(), session); err != nil {
		s.sendError(c, http.StatusInternalServerError, codeStorageFailed, "failed to save session", err)
		return
	}
	s.logger.Infof("session %s: %s regime saves %s", session.ID, details.Comparison.BestRegime, details.Comparison.TaxSavings)

	c.JSON(http.StatusOK, calculationResponse(session))
}

func (s *Server) results(c *gin.Context) {
	session, ok := s.loadSession(c, c.Param("session_id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, calculationResponse(session))
}

func (s *Server) summary(c *gin.Context) {
	session, ok := s.loadSession(c, c.Param("session_id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{
		SessionID: session.ID,
		Summary:   calculation.Summarize(&session.Details),
	})
}

func (s *Server) selectRegime(c *gin.Context) {
	var req SelectRegimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body", err)
		return
	}
	if req.SessionID == "" {
		s.sendError(c, http.StatusBadRequest, codeInvalidRequest, "session_id is required", nil)
		return
	}

	session, ok := s.loadSession(c, req.SessionID)
	if !ok {
		return
	}
	result, err := calculation.SelectRegime(&session.Details, req.Regime)
	if err != nil {
		s.sendError(c, http.StatusBadRequest, codeInvalidRequest, "invalid regime", err)
		return
	}

	session.SelectedRegime = result.Regime
	if err := s.store.Update(c.Request.Context(), session); err != nil {
		s.storeError(c, session.ID, err)
		return
	}
	c.JSON(http.StatusOK, SelectRegimeResponse{
		SessionID:      session.ID,
		SelectedRegime: result.Regime,
		Result:         result,
	})
}

func (s *Server) aggregate(c *gin.Context) {
	var req AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body", err)
		return
	}

	docType := domain.DocumentSalarySlip
	if req.DocumentType != "" {
		parsed, err := domain.ParseDocumentType(req.DocumentType)
		if err != nil {
			s.sendError(c, http.StatusBadRequest, codeInvalidRequest, "invalid document type", err)
			return
		}
		docType = parsed
	}

	result, err := s.aggregator.AggregateWithReport(req.Documents, docType)
	if err != nil {
		var aggErr *domain.AggregationError
		if errors.As(err, &aggErr) {
			s.sendError(c, http.StatusBadRequest, codeAggregationFailed, "salary documents could not be aggregated", err)
			return
		}
		s.sendError(c, http.StatusInternalServerError, codeAggregationFailed, "aggregation failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) extractDocument(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.sendError(c, http.StatusBadRequest, codeInvalidRequest, "a PDF file is required in field \"file\"", err)
		return
	}
	if s.cfg.MaxUploadBytes > 0 && fh.Size > s.cfg.MaxUploadBytes {
		s.sendError(c, http.StatusRequestEntityTooLarge, codeInvalidRequest,
			fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxUploadBytes), nil)
		return
	}

	opts := extract.Options{
		Source:   fh.Filename,
		Password: c.PostForm("password"),
	}
	if t := strings.TrimSpace(c.PostForm("document_type")); t != "" && t != "auto" {
		docType, err := domain.ParseDocumentType(t)
		if err != nil {
			s.sendError(c, http.StatusBadRequest, codeInvalidRequest, "invalid document type", err)
			return
		}
		opts.DocumentType = docType
	}

	f, err := fh.Open()
	if err != nil {
		s.sendError(c, http.StatusBadRequest, codeInvalidRequest, "failed to read upload", err)
		return
	}
	defer f.Close()

	raw, err := s.extractor.Extract(c.Request.Context(), f, fh.Size, opts)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, extract.ErrPasswordRequired) || errors.Is(err, extract.ErrInvalidPassword) {
			status = http.StatusUnauthorized
		}
		s.sendError(c, status, codeExtractionFailed, "document could not be read", err)
		return
	}
	c.JSON(http.StatusOK, raw)
}

func (s *Server) loadSession(c *gin.Context, id string) (*repository.Session, bool) {
	session, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		s.storeError(c, id, err)
		return nil, false
	}
	return session, true
}

func (s *Server) storeError(c *gin.Context, id string, err error) {
	if errors.Is(err, repository.ErrSessionNotFound) {
		s.sendError(c, http.StatusNotFound, codeSessionNotFound, fmt.Sprintf("session %s not found", id), nil)
		return
	}
	s.sendError(c, http.StatusInternalServerError, codeStorageFailed, "session store failed", err)
}

// sendError writes a structured error response.
func (s *Server) sendError(c *gin.Context, status int, code, message string, err error) {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
		s.logger.Errorf("%s %s: %s", c.Request.Method, c.FullPath(), message)
	}
	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
		Code:    status,
	})
}

func calculationResponse(session *repository.Session) CalculationResponse {
	return CalculationResponse{
		SessionID:       session.ID,
		Calculation:     session.Details,
		Recommendations: session.Recommendations,
		Summary:         calculation.Summarize(&session.Details),
		SelectedRegime:  session.SelectedRegime,
	}
}
