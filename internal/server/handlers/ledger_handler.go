package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/domain/models"
	repo "github.com/salonhq/ledger/internal/repository/mongodb"
	ledgersvc "github.com/salonhq/ledger/internal/service/ledger"
	"github.com/salonhq/ledger/internal/service/reporting"
)

// ContextKeyUserID is the gin context key under which the auth middleware
// stores the authenticated account id (hex ObjectID).
const ContextKeyUserID = "userID"

// LedgerHandler handles record creation and the simple per-entity reads.
type LedgerHandler struct {
	svc    *ledgersvc.Service
	logger *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter for ledger writes and
// per-entity reads.
func NewLedgerHandler(svc *ledgersvc.Service, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{svc: svc, logger: logger}
}

func staffIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(ContextKeyUserID))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// AddService records a rendered service for the authenticated staff member.
func (h *LedgerHandler) AddService(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	var req models.AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	service, err := h.svc.CreateService(c.Request.Context(), staffID, req)
	if err != nil {
		if errors.Is(err, ledgersvc.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed adding service", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not add service"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service added successfully",
		"service": service,
	})
}

// MyServicesToday returns the caller's own services for the current day.
func (h *LedgerHandler) MyServicesToday(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	services, err := h.svc.ServicesForToday(c.Request.Context(), staffID)
	if err != nil {
		h.logger.Error("failed fetching today's services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Services fetched successfully",
		"services": services,
	})
}

// CreateExpense records a business expense.
func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item, amount, month and year are required"})
		return
	}

	expense, err := h.svc.CreateExpense(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ledgersvc.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed creating expense", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not add expense"})
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// ListExpenses returns every recorded expense.
func (h *LedgerHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.svc.ListExpenses(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing expenses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not fetch expenses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// ListEmployees returns the staff directory.
func (h *LedgerHandler) ListEmployees(c *gin.Context) {
	employees, err := h.svc.ListStaff(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing employees", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not fetch employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// ChangeStaffStatus toggles a staff account between active and inactive.
func (h *LedgerHandler) ChangeStaffStatus(c *gin.Context) {
	var req models.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	err := h.svc.SetStaffStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ledgersvc.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		default:
			h.logger.Error("failed changing staff status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not change status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// PourWater upserts today's watering log for the caller.
func (h *LedgerHandler) PourWater(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	var req models.PourWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	log, err := h.svc.PourWater(c.Request.Context(), staffID, req.Status)
	if err != nil {
		if errors.Is(err, ledgersvc.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed recording water log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not record water log"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Water log recorded successfully",
		"water":   log,
	})
}

// WaterDetails lists watering logs for the resolved date range.
func (h *LedgerHandler) WaterDetails(c *gin.Context) {
	params := reporting.RangeParams{
		Date:      c.Query("date"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	logs, err := h.svc.WaterDetails(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, reporting.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed fetching water logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error, could not fetch water logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"water": logs})
}
