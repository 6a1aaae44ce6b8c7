package server

import (
	"net/http"

	"risk-register/internal/config"
	"risk-register/internal/database"
	"risk-register/internal/handlers"
	"risk-register/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	store := database.NewStore(db)
	secret := []byte(cfg.JWTSecret)

	authH := handlers.NewAuthHandler(store, secret)
	groupH := handlers.NewGroupHandler(store)
	riskH := handlers.NewRiskHandler(store)
	auditH := handlers.NewAuditHandler(store)

	api := r.Group("/api")

	// AUTH
	api.POST("/register", authH.Register)
	api.POST("/login", authH.Login)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(secret))

	// RISK GROUPS
	protected.GET("/risk_groups", groupH.List)
	protected.POST("/risk_groups", groupH.Create)
	protected.GET("/risk_groups/:id", groupH.Get)
	protected.GET("/risk_groups/:id/risks", groupH.Risks)
	protected.GET("/risk_groups/:id/summary", groupH.Summary)
	protected.GET("/risk_groups/:id/stats", groupH.StatsByLevel)
	protected.GET("/risk_groups/:id/stats_by_impact", groupH.StatsByImpact)

	// RISKS
	// /risks/summary, /risks/stats and /risks/stats_by_impact share the
	// :id segment, see RiskHandler.GetOrAggregate
	protected.GET("/risks", riskH.List)
	protected.POST("/risks", riskH.Create)
	protected.GET("/risks/:id", riskH.GetOrAggregate)
	protected.PUT("/risks/:id", riskH.Update)
	protected.DELETE("/risks/:id", riskH.Delete)

	// AUDIT
	protected.GET("/audit", auditH.List)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
