package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/restopos/inventory-service/internal/api/httperr"
	"github.com/restopos/inventory-service/internal/liquor"
	"github.com/restopos/inventory-service/internal/liquor/dto"
	"github.com/restopos/inventory-service/internal/model"
	"go.uber.org/zap"
)

type LiquorHandler struct {
	uc     liquor.UseCase
	logger *zap.Logger
}

func NewLiquorHandler(uc liquor.UseCase, log *zap.Logger) *LiquorHandler {
	return &LiquorHandler{uc: uc, logger: log}
}

func (h *LiquorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Deactivate)
	rg.POST("/:id/bottles", h.AddBottles)
	rg.PATCH("/portions/:portionId/price", h.SetPortionPrice)
	rg.POST("/sweep", h.Sweep)
}

func (h *LiquorHandler) Create(c *gin.Context) {
	var in dto.CreateLiquorInput
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

func (h *LiquorHandler) List(c *gin.Context) {
	f := &dto.LiquorFilters{
		Type:     model.LiquorType(c.Query("type")),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 50),
	}

	items, total, err := h.uc.FindAll(c.Request.Context(), f)
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

func (h *LiquorHandler) Get(c *gin.Context) {
	item, err := h.uc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *LiquorHandler) Deactivate(c *gin.Context) {
	if err := h.uc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		httperr.JSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addBottlesPayload struct {
	Count  int64  `json:"count" binding:"required"`
	Reason string `json:"reason"`
}

func (h *LiquorHandler) AddBottles(c *gin.Context) {
	var payload addBottlesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.uc.AddBottles(c.Request.Context(), &dto.AddBottlesInput{
		ItemID: c.Param("id"),
		Count:  payload.Count,
		Reason: payload.Reason,
	})
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type portionPricePayload struct {
	Price float64 `json:"price"`
}

func (h *LiquorHandler) SetPortionPrice(c *gin.Context) {
	var payload portionPricePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.uc.SetPortionPrice(c.Request.Context(), c.Param("portionId"), payload.Price); err != nil {
		httperr.JSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sweep triggers the auto-discard pass on demand, in addition to the
// scheduled one.
func (h *LiquorHandler) Sweep(c *gin.Context) {
	report, err := h.uc.SweepAutoDiscard(c.Request.Context())
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
