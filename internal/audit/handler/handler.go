package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/restopos/inventory-service/internal/api/httperr"
	"github.com/restopos/inventory-service/internal/audit"
	"github.com/restopos/inventory-service/internal/model"
	"go.uber.org/zap"
)

type AuditHandler struct {
	repo   audit.Repository
	logger *zap.Logger
}

func NewAuditHandler(repo audit.Repository, log *zap.Logger) *AuditHandler {
	return &AuditHandler{repo: repo, logger: log}
}

func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func (h *AuditHandler) List(c *gin.Context) {
	f := &audit.Filters{
		ItemKind: model.ItemKind(c.Query("itemKind")),
		ItemID:   c.Query("itemId"),
		ItemName: c.Query("itemName"),
		Action:   model.AuditAction(c.Query("action")),
		OrderRef: c.Query("orderRef"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 50),
	}

	entries, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": total})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
