package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"propwell/server/config"
	"propwell/server/internal/analysis"
	"propwell/server/internal/database"
	"propwell/server/internal/models"
	"propwell/server/internal/queue"
	"propwell/server/internal/underwriting"
)

type Handler struct {
	db     *database.Database
	config *config.Config
	queue  *queue.AnalysisQueue
	logger *logrus.Logger
}

// UnderwriteRequest carries deal assumptions for one underwriting run.
type UnderwriteRequest struct {
	Inputs     underwriting.DealInputs `json:"inputs"`
	PropertyID *string                 `json:"property_id"`
}

type UnderwriteResponse struct {
	Results        underwriting.Results        `json:"results"`
	Recommendation underwriting.Recommendation `json:"recommendation"`
	ModelID        string                      `json:"model_id,omitempty"`
}

// AnalyzeRequest carries a subject property plus the raw market data an
// upstream sourcing service already fetched for it.
type AnalyzeRequest = analysis.Request

type AnalyzeResponse struct {
	analysis.Report
	AnalysisID string `json:"analysis_id,omitempty"`
}

// BatchAnalyzeRequest queues multiple analyses for background
// processing.
type BatchAnalyzeRequest struct {
	Jobs []*analysis.Request `json:"jobs"`
}

func NewHandler(db *database.Database, cfg *config.Config, analysisQueue *queue.AnalysisQueue, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:     db,
		config: cfg,
		queue:  analysisQueue,
		logger: logger,
	}
}

// RunUnderwriting computes deal results and a recommendation, saving the
// run. A save failure is logged but never fails the response.
func (h *Handler) RunUnderwriting(c *gin.Context) {
	var req UnderwriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse underwrite request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Inputs.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: inputs.type"})
		return
	}

	results := underwriting.RunUnderwriting(req.Inputs)
	recommendation := underwriting.GetRecommendation(req.Inputs, results)

	response := UnderwriteResponse{
		Results:        results,
		Recommendation: recommendation,
	}

	record, err := buildUnderwritingRecord(req, results, recommendation)
	if err != nil {
		h.logger.WithError(err).Error("Failed to serialize underwriting record")
	} else if err := h.db.SaveUnderwritingRecord(record); err != nil {
		h.logger.WithError(err).Error("Failed to save underwriting record")
	} else {
		response.ModelID = record.ID
	}

	c.JSON(http.StatusOK, response)
}

// GetUnderwritingRecords returns the most recent saved runs.
func (h *Handler) GetUnderwritingRecords(c *gin.Context) {
	records, err := h.db.GetRecentUnderwritingRecords(h.config.Analysis.RecentLimit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get underwriting records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get underwriting records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetDefaultInputs returns the starting assumptions for a strategy.
func (h *Handler) GetDefaultInputs(c *gin.Context) {
	t := underwriting.InvestmentType(c.DefaultQuery("type", string(underwriting.LongTermHold)))
	switch t {
	case underwriting.LongTermHold, underwriting.FixAndFlip, underwriting.ShortTermRental:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown investment type"})
		return
	}

	c.JSON(http.StatusOK, underwriting.DefaultInputs(t))
}

// AnalyzeProperty assembles comps, rent recommendation, vacancy model,
// and the property score from caller-supplied market data.
func (h *Handler) AnalyzeProperty(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse analyze request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Subject.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject.address is required"})
		return
	}

	report := analysis.Run(req, h.config.Analysis.VacancyCarryCost, time.Now())
	response := AnalyzeResponse{Report: report}

	record, err := analysis.BuildRecord(req, report)
	if err != nil {
		h.logger.WithError(err).Error("Failed to serialize analysis record")
	} else if err := h.db.SaveAnalysisRecord(record); err != nil {
		h.logger.WithError(err).Error("Failed to save analysis record")
	} else {
		response.AnalysisID = record.ID
	}

	c.JSON(http.StatusOK, response)
}

// EnqueueAnalyses accepts a batch of analysis jobs for background
// processing. A full queue sheds load with 503.
func (h *Handler) EnqueueAnalyses(c *gin.Context) {
	var req BatchAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse batch analyze request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Jobs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobs must not be empty"})
		return
	}
	for _, job := range req.Jobs {
		if job == nil || job.Subject.Address == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "every job needs subject.address"})
			return
		}
	}

	if err := h.queue.Push(req.Jobs); err != nil {
		h.logger.WithError(err).Warn("Rejected analysis batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": len(req.Jobs)})
}

// GetAnalyses returns the most recent saved analyses.
func (h *Handler) GetAnalyses(c *gin.Context) {
	records, err := h.db.GetRecentAnalysisRecords(h.config.Analysis.RecentLimit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get analyses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analyses"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetAnalysis returns one saved analysis by id.
func (h *Handler) GetAnalysis(c *gin.Context) {
	record, err := h.db.GetAnalysisRecord(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analysis"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func buildUnderwritingRecord(req UnderwriteRequest, results underwriting.Results, rec underwriting.Recommendation) (*models.UnderwritingRecord, error) {
	inputsJSON, err := json.Marshal(req.Inputs)
	if err != nil {
		return nil, err
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	return &models.UnderwritingRecord{
		ID:             uuid.NewString(),
		InvestmentType: string(req.Inputs.Type),
		PropertyID:     req.PropertyID,
		Inputs:         string(inputsJSON),
		Results:        string(resultsJSON),
		Recommendation: string(recJSON),
	}, nil
}
