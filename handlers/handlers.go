package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"leads-service/aggregate"
	"leads-service/config"
	"leads-service/leads"
	"leads-service/metrics"
	"leads-service/models"
	"leads-service/services"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Store is the append-and-read-all contract the handlers need from the
// lead store collaborator.
type Store interface {
	Append(ctx context.Context, lead *models.Lead) error
	ReadAll(ctx context.Context) ([]models.Lead, error)
}

// LeadsHandler serves the capture and dashboard endpoints.
type LeadsHandler struct {
	cfg        *config.Config
	builder    *leads.Builder
	aggregator *aggregate.Aggregator
	store      Store
	hub        *services.LeadFeedHub
	loc        *time.Location
}

func NewLeadsHandler(cfg *config.Config, builder *leads.Builder, aggregator *aggregate.Aggregator, store Store, hub *services.LeadFeedHub) *LeadsHandler {
	return &LeadsHandler{
		cfg:        cfg,
		builder:    builder,
		aggregator: aggregator,
		store:      store,
		hub:        hub,
		loc:        cfg.Location(),
	}
}

// HealthCheck returns a simple health status.
func (h *LeadsHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: "leads-service",
	})
}

// Root is the legacy liveness payload listing the capture endpoints.
func (h *LeadsHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "API funcionando",
		"timestamp": time.Now().In(h.loc).Format(time.RFC3339),
		"endpoints": []string{"/captura-lancamento", "/captura-imovel-geral"},
	})
}

// CaptureGeneral handles POST /captura-imovel-geral: validate, classify,
// build the record and append exactly one row to the store.
func (h *LeadsHandler) CaptureGeneral(c *gin.Context) {
	req := &models.GeneralCaptureRequest{}
	if err := c.BindJSON(req); err != nil {
		log.Errorf("Failed to parse /captura-imovel-geral payload: %v", err)
		return
	}

	lead, err := h.builder.BuildGeneralLead(req)
	if err != nil {
		h.rejectInvalid(c, "captura-imovel-geral", err)
		return
	}

	if err := h.store.Append(c.Request.Context(), lead); err != nil {
		log.Errorf("Error appending general lead: %v", err)
		metrics.StoreErrorsTotal.WithLabelValues("append").Inc()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: http.StatusInternalServerError,
			Error:  err.Error(),
		})
		return
	}

	metrics.CapturedTotal.WithLabelValues(lead.Source, string(lead.PropertyType)).Inc()
	h.hub.BroadcastLead(lead)

	c.JSON(http.StatusOK, models.CaptureResponse{
		Status:       http.StatusOK,
		Message:      "Imóvel capturado com sucesso",
		LeadID:       lead.ID,
		Reference:    lead.Reference,
		PropertyType: string(lead.PropertyType),
		Timestamp:    lead.Timestamp,
	})
}

// CaptureLaunch handles POST /captura-lancamento for the tracked launch
// campaigns.
func (h *LeadsHandler) CaptureLaunch(c *gin.Context) {
	req := &models.LaunchCaptureRequest{}
	if err := c.BindJSON(req); err != nil {
		log.Errorf("Failed to parse /captura-lancamento payload: %v", err)
		return
	}

	lead, err := h.builder.BuildLaunchLead(req)
	if err != nil {
		h.rejectInvalid(c, "captura-lancamento", err)
		return
	}

	if err := h.store.Append(c.Request.Context(), lead); err != nil {
		log.Errorf("Error appending launch lead: %v", err)
		metrics.StoreErrorsTotal.WithLabelValues("append").Inc()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: http.StatusInternalServerError,
			Error:  err.Error(),
		})
		return
	}

	metrics.CapturedTotal.WithLabelValues(lead.Source, string(lead.PropertyType)).Inc()
	h.hub.BroadcastLead(lead)

	c.JSON(http.StatusOK, models.CaptureResponse{
		Status:    http.StatusOK,
		Message:   "Lançamento capturado com sucesso",
		LeadID:    lead.ID,
		Launch:    lead.Reference,
		Timestamp: lead.Timestamp,
	})
}

// rejectInvalid maps builder failures to the 400 contract. Anything that
// is not a ValidationError is unexpected and reported as a 500.
func (h *LeadsHandler) rejectInvalid(c *gin.Context, endpoint string, err error) {
	var verr *leads.ValidationError
	if errors.As(err, &verr) {
		metrics.ValidationErrorsTotal.WithLabelValues(endpoint).Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status: http.StatusBadRequest,
			Error:  verr.Message,
		})
		return
	}
	log.Errorf("Unexpected builder error on /%s: %v", endpoint, err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Status: http.StatusInternalServerError,
		Error:  err.Error(),
	})
}
