package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/service/reporting"
)

// ReportHandler exposes the reporting queries: paginated listings, daily
// rollups and monthly profit reconciliation.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter for reporting queries.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// ListServices returns one page of services with whole-filter totals.
// Query: page, limit, startDate?, endDate?, paymentType?.
func (h *ReportHandler) ListServices(c *gin.Context) {
	params := reporting.ListParams{
		Page:        queryInt64(c, "page", 1),
		Limit:       queryInt64(c, "limit", 10),
		StartDate:   c.Query("startDate"),
		EndDate:     c.Query("endDate"),
		PaymentType: c.Query("paymentType"),
	}

	listing, err := h.svc.ListServices(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, reporting.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Services not found!"})
		case errors.Is(err, reporting.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed listing services", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not fetch services"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Services fetched successfully",
		"services":    listing.Items,
		"total":       listing.Total,
		"totalAmount": listing.TotalAmount,
		"page":        listing.Page,
		"limit":       listing.Limit,
	})
}

// GraphServices returns the dense per-day rollup for the resolved range.
// Query: date? or startDate?+endDate?; defaults to the trailing seven days.
func (h *ReportHandler) GraphServices(c *gin.Context) {
	params := reporting.RangeParams{
		Date:      c.Query("date"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	buckets, err := h.svc.RollupServices(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, reporting.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed rolling up services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not build graph data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Graph data fetched successfully",
		"days":    buckets,
	})
}

// MonthlyProfit reconciles one month. Query: year, month (both required).
func (h *ReportHandler) MonthlyProfit(c *gin.Context) {
	year := queryInt(c, "year", 0)
	month := queryInt(c, "month", 0)

	report, err := h.svc.MonthlyProfit(c.Request.Context(), year, month)
	if err != nil {
		if errors.Is(err, reporting.ErrMissingParameter) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Year and month are required"})
			return
		}
		h.logger.Error("failed reconciling monthly profit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func queryInt64(c *gin.Context, key string, fallback int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
