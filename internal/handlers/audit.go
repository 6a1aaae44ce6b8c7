package handlers

import (
	"net/http"

	"risk-register/internal/database"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	store *database.Store
}

func NewAuditHandler(store *database.Store) *AuditHandler {
	return &AuditHandler{store: store}
}

func (h *AuditHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	logs, err := h.store.AuditLogs(p)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
