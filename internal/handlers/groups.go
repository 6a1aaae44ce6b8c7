package handlers

import (
	"net/http"

	"risk-register/internal/database"
	"risk-register/internal/stats"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	store *database.Store
}

func NewGroupHandler(store *database.Store) *GroupHandler {
	return &GroupHandler{store: store}
}

func (h *GroupHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	groups, err := h.store.Groups(p)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

type createGroupRequest struct {
	Name string `json:"name"`
}

func (h *GroupHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Group name is required"})
		return
	}

	group, err := h.store.CreateGroup(req.Name, p.ID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	group, err := h.store.Group(p, id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) Risks(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	risks, err := h.store.GroupRisks(p, id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, risks)
}

func (h *GroupHandler) Summary(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	risks, err := h.store.GroupRisks(p, id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.Summarize(risks))
}

func (h *GroupHandler) StatsByLevel(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	risks, err := h.store.GroupRisks(p, id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.ByLevel(risks))
}

func (h *GroupHandler) StatsByImpact(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	risks, err := h.store.GroupRisks(p, id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.ByImpact(risks))
}
