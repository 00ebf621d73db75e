package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/restopos/inventory-service/internal/api/httperr"
	"github.com/restopos/inventory-service/internal/model"
	"github.com/restopos/inventory-service/internal/stock"
	"github.com/restopos/inventory-service/internal/stock/dto"
	"go.uber.org/zap"
)

type StockHandler struct {
	uc     stock.UseCase
	logger *zap.Logger
}

func NewStockHandler(uc stock.UseCase, log *zap.Logger) *StockHandler {
	return &StockHandler{uc: uc, logger: log}
}

func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:name", h.Get)
	rg.DELETE("/:name", h.Deactivate)
	rg.POST("/:name/restock", h.Restock)
	rg.GET("/:name/availability", h.CheckAvailability)
}

func (h *StockHandler) Create(c *gin.Context) {
	var in dto.CreateStockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.uc.Create(c.Request.Context(), &in)
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *StockHandler) List(c *gin.Context) {
	f := &dto.StockFilters{
		Category:     model.StockCategory(c.Query("category")),
		LowStockOnly: c.Query("lowStock") == "true",
		Page:         queryInt(c, "page", 1),
		PageSize:     queryInt(c, "pageSize", 50),
	}

	items, total, err := h.uc.FindAll(c.Request.Context(), f)
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

func (h *StockHandler) Get(c *gin.Context) {
	item, err := h.uc.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) Deactivate(c *gin.Context) {
	if err := h.uc.Deactivate(c.Request.Context(), c.Param("name")); err != nil {
		httperr.JSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type restockPayload struct {
	Quantity float64 `json:"quantity" binding:"required"`
	Op       string  `json:"operation" binding:"required"`
	Reason   string  `json:"reason"`
}

func (h *StockHandler) Restock(c *gin.Context) {
	var payload restockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.uc.Restock(c.Request.Context(), &dto.RestockInput{
		Name:     c.Param("name"),
		Quantity: payload.Quantity,
		Op:       dto.RestockOp(payload.Op),
		Reason:   payload.Reason,
	})
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) CheckAvailability(c *gin.Context) {
	quantity, err := strconv.ParseFloat(c.Query("quantity"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity query parameter is required"})
		return
	}

	result, err := h.uc.CheckAvailability(c.Request.Context(), &dto.AvailabilityInput{
		Name:     c.Param("name"),
		Quantity: quantity,
		Unit:     c.Query("unit"),
	})
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
