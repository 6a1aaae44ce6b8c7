package handlers

import (
	"net/http"

	"risk-register/internal/database"
	"risk-register/internal/stats"

	"github.com/gin-gonic/gin"
)

type RiskHandler struct {
	store *database.Store
}

func NewRiskHandler(store *database.Store) *RiskHandler {
	return &RiskHandler{store: store}
}

func (h *RiskHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	risks, err := h.store.Risks(p)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, risks)
}

type createRiskRequest struct {
	AssetName      string  `json:"asset_name" binding:"required"`
	RiskLevel      string  `json:"risk_level"`
	Impact         string  `json:"impact"`
	Likelihood     string  `json:"likelihood"`
	MitigationPlan *string `json:"mitigation_plan"`
	GroupID        uint    `json:"group_id" binding:"required"`
}

func (h *RiskHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req createRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Asset name and group ID are required"})
		return
	}

	risk, err := h.store.CreateRisk(database.RiskInput{
		AssetName:      req.AssetName,
		RiskLevel:      req.RiskLevel,
		Impact:         req.Impact,
		Likelihood:     req.Likelihood,
		MitigationPlan: req.MitigationPlan,
		GroupID:        req.GroupID,
	}, p.ID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, risk)
}

// GetOrAggregate serves GET /api/risks/:id. gin's router cannot mix
// static segments with :id at this position, so the aggregate
// endpoints are dispatched from here.
func (h *RiskHandler) GetOrAggregate(c *gin.Context) {
	switch c.Param("id") {
	case "summary":
		h.Summary(c)
	case "stats":
		h.StatsByLevel(c)
	case "stats_by_impact":
		h.StatsByImpact(c)
	default:
		h.Get(c)
	}
}

func (h *RiskHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	risk, err := h.store.Risk(p, id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, risk)
}

type updateRiskRequest struct {
	AssetName      *string `json:"asset_name"`
	RiskLevel      *string `json:"risk_level"`
	Impact         *string `json:"impact"`
	Likelihood     *string `json:"likelihood"`
	MitigationPlan *string `json:"mitigation_plan"`
	GroupID        *uint   `json:"group_id"`
}

func (h *RiskHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req updateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	risk, err := h.store.UpdateRisk(p, id, database.RiskPatch{
		AssetName:      req.AssetName,
		RiskLevel:      req.RiskLevel,
		Impact:         req.Impact,
		Likelihood:     req.Likelihood,
		MitigationPlan: req.MitigationPlan,
		GroupID:        req.GroupID,
	})
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, risk)
}

func (h *RiskHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.store.DeleteRisk(p, id); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Risk deleted successfully"})
}

func (h *RiskHandler) Summary(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	risks, err := h.store.Risks(p)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.Summarize(risks))
}

func (h *RiskHandler) StatsByLevel(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	risks, err := h.store.Risks(p)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.ByLevel(risks))
}

func (h *RiskHandler) StatsByImpact(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	risks, err := h.store.Risks(p)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.ByImpact(risks))
}
