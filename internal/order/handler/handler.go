package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restopos/inventory-service/internal/api/httperr"
	"github.com/restopos/inventory-service/internal/order"
	"github.com/restopos/inventory-service/internal/order/dto"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderHandler(uc order.UseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/consume", h.Consume)
	rg.POST("/validate", h.Validate)
}

func (h *OrderHandler) Consume(c *gin.Context) {
	var in dto.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.uc.ConsumeOrder(c.Request.Context(), &in)
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) Validate(c *gin.Context) {
	var in dto.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.uc.ValidateOrder(c.Request.Context(), &in)
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
