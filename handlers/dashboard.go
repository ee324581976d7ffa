package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"leads-service/aggregate"
	"leads-service/classifier"
	"leads-service/leads"
	"leads-service/metrics"
	"leads-service/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// DashboardData handles GET /dados-dashboard, the legacy read payload.
// The zero-decimal rate and fixed per-campaign fields are an existing
// consumer contract.
func (h *LeadsHandler) DashboardData(c *gin.Context) {
	records, err := h.store.ReadAll(c.Request.Context())
	if err != nil {
		log.Errorf("Error reading leads for dashboard: %v", err)
		metrics.StoreErrorsTotal.WithLabelValues("read_all").Inc()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: http.StatusInternalServerError,
			Error:  err.Error(),
		})
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":      http.StatusOK,
			"total_leads": 0,
			"dados":       []models.Lead{},
		})
		return
	}

	view := h.aggregator.Aggregate(records, aggregate.Filters{})

	c.JSON(http.StatusOK, models.DashboardDataResponse{
		Status:           http.StatusOK,
		TotalLeads:       view.Total,
		VisitInterest:    view.InterestCount,
		InterestRate:     aggregate.RateRounded(view.InterestCount, view.Total),
		WindOceanica:     view.CampaignCounts["Wind Oceanica"],
		TresorCamboinhas: view.CampaignCounts["Tresor Camboinhas"],
		PropertyTypes:    view.TypeCounts,
		Records:          records,
		LastRefresh:      time.Now().In(h.loc).Format(leads.TimestampLayout),
	})
}

// DashboardSummary handles GET /dashboard/summary: the expanded aggregate
// view with optional tipo, from and to (YYYY-MM-DD) filters.
func (h *LeadsHandler) DashboardSummary(c *gin.Context) {
	filters := aggregate.Filters{
		PropertyType: classifier.PropertyType(c.Query("tipo")),
	}

	if from := c.Query("from"); from != "" {
		ts, err := time.ParseInLocation("2006-01-02", from, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Status: http.StatusBadRequest,
				Error:  fmt.Sprintf("Parâmetro from inválido: %s", from),
			})
			return
		}
		filters.From = ts
	}
	if to := c.Query("to"); to != "" {
		ts, err := time.ParseInLocation("2006-01-02", to, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Status: http.StatusBadRequest,
				Error:  fmt.Sprintf("Parâmetro to inválido: %s", to),
			})
			return
		}
		filters.To = ts
	}

	records, err := h.store.ReadAll(c.Request.Context())
	if err != nil {
		log.Errorf("Error reading leads for summary: %v", err)
		metrics.StoreErrorsTotal.WithLabelValues("read_all").Inc()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: http.StatusInternalServerError,
			Error:  err.Error(),
		})
		return
	}

	view := h.aggregator.Aggregate(records, filters)

	c.JSON(http.StatusOK, gin.H{
		"status":             http.StatusOK,
		"summary":            view,
		"ultima_atualizacao": time.Now().In(h.loc).Format(leads.TimestampLayout),
	})
}

// exportColumns are the display columns offered for download, mirroring
// the dashboard table.
var exportColumns = []string{
	"Data/Hora", "Nome", "Telefone", "Imóvel/Referência",
	"Interesse Visita", "Tipo Imóvel", "Status",
}

// DashboardExport handles GET /dashboard/export, streaming the lead table
// as CSV.
func (h *LeadsHandler) DashboardExport(c *gin.Context) {
	records, err := h.store.ReadAll(c.Request.Context())
	if err != nil {
		log.Errorf("Error reading leads for export: %v", err)
		metrics.StoreErrorsTotal.WithLabelValues("read_all").Inc()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: http.StatusInternalServerError,
			Error:  err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("leads_%s.csv", time.Now().In(h.loc).Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	w := csv.NewWriter(c.Writer)
	if err := w.Write(exportColumns); err != nil {
		log.Errorf("Error writing CSV header: %v", err)
		return
	}
	for _, l := range records {
		row := []string{
			l.Timestamp, l.Name, l.Phone, l.Reference,
			l.VisitInterest, string(l.PropertyType), l.Status,
		}
		if err := w.Write(row); err != nil {
			log.Errorf("Error writing CSV row: %v", err)
			return
		}
	}
	w.Flush()
}
