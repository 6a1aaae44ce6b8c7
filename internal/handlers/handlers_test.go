package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"risk-register/internal/auth"
	"risk-register/internal/config"
	"risk-register/internal/models"
	"risk-register/internal/server"
	"risk-register/internal/testutil"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type env struct {
	db     *gorm.DB
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	cfg := &config.Config{JWTSecret: testSecret}
	return &env{db: db, router: server.NewRouter(cfg, db)}
}

// user creates an account and returns a bearer token for it.
func (e *env) user(t *testing.T, email string, role models.UserRole) string {
	t.Helper()
	u := testutil.CreateUser(t, e.db, email, "pw", role)
	token, err := auth.IssueToken([]byte(testSecret), u)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func (e *env) createGroup(t *testing.T, token, name string) uint {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/risk_groups", token, gin.H{"name": name})
	if w.Code != http.StatusCreated {
		t.Fatalf("create group: status %d, body %s", w.Code, w.Body.String())
	}
	return decode[models.RiskGroup](t, w).ID
}

func (e *env) createRisk(t *testing.T, token string, body gin.H) models.Risk {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/risks", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create risk: status %d, body %s", w.Code, w.Body.String())
	}
	return decode[models.Risk](t, w)
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/register", "", gin.H{"email": "alice@example.com", "password": "secret"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodPost, "/api/register", "", gin.H{"email": "alice@example.com", "password": "other"})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register: status %d, want 409", w.Code)
	}

	w = e.do(t, http.MethodPost, "/api/register", "", gin.H{"email": "bob@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("register without password: status %d, want 400", w.Code)
	}

	w = e.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "alice@example.com", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}
	resp := decode[struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}](t, w)
	if resp.AccessToken == "" {
		t.Error("login returned empty access_token")
	}
	if resp.User.Email != "alice@example.com" || resp.User.Role != "user" {
		t.Errorf("login user payload = %+v", resp.User)
	}

	// the issued token actually works against a protected route
	w = e.do(t, http.MethodGet, "/api/risks", resp.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("token from login rejected: status %d", w.Code)
	}

	w = e.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "alice@example.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password: status %d, want 401", w.Code)
	}
	w = e.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "nobody@example.com", "password": "x"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown email: status %d, want 401", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newEnv(t)

	for _, path := range []string{"/api/risks", "/api/risk_groups", "/api/risks/summary"} {
		w := e.do(t, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, w.Code)
		}
	}
}

func TestVisibilityEndToEnd(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice@example.com", models.RoleUser)
	bob := e.user(t, "bob@example.com", models.RoleUser)
	admin := e.user(t, "root@example.com", models.RoleAdmin)

	g1 := e.createGroup(t, alice, "G1")
	e.createRisk(t, alice, gin.H{"asset_name": "srv1", "risk_level": "High", "group_id": g1})

	w := e.do(t, http.MethodGet, "/api/risks", bob, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("bob list: status %d", w.Code)
	}
	if risks := decode[[]models.Risk](t, w); len(risks) != 0 {
		t.Errorf("bob sees %d risks, want 0", len(risks))
	}

	w = e.do(t, http.MethodGet, "/api/risks", admin, nil)
	if risks := decode[[]models.Risk](t, w); len(risks) != 1 {
		t.Errorf("admin sees %d risks, want 1", len(risks))
	}

	w = e.do(t, http.MethodGet, "/api/risks/stats", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("alice stats: status %d", w.Code)
	}
	stats := decode[struct {
		Labels []string `json:"labels"`
		Data   []int    `json:"data"`
	}](t, w)
	if len(stats.Labels) != 1 || stats.Labels[0] != "High" || stats.Data[0] != 1 {
		t.Errorf("alice stats = %+v, want labels [High], data [1]", stats)
	}
}

func TestCreateRiskDefaultsAndPayload(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice@example.com", models.RoleUser)
	g := e.createGroup(t, alice, "servers")

	risk := e.createRisk(t, alice, gin.H{"asset_name": "srv1", "group_id": g})
	if risk.RiskLevel != "Low" || risk.Impact != "Low" || risk.Likelihood != "Low" {
		t.Errorf("defaults = %q/%q/%q, want Low/Low/Low", risk.RiskLevel, risk.Impact, risk.Likelihood)
	}
	if risk.Group == nil || risk.Group.ID != g {
		t.Errorf("risk payload missing nested group: %+v", risk.Group)
	}

	w := e.do(t, http.MethodPost, "/api/risks", alice, gin.H{"asset_name": "srv2"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("create without group_id: status %d, want 400", w.Code)
	}
	w = e.do(t, http.MethodPost, "/api/risks", alice, gin.H{"group_id": g})
	if w.Code != http.StatusBadRequest {
		t.Errorf("create without asset_name: status %d, want 400", w.Code)
	}
	w = e.do(t, http.MethodPost, "/api/risks", alice, gin.H{"asset_name": "srv2", "group_id": 999})
	if w.Code != http.StatusNotFound {
		t.Errorf("create with unknown group: status %d, want 404", w.Code)
	}
}

func TestRiskReadUpdateDelete(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice@example.com", models.RoleUser)
	bob := e.user(t, "bob@example.com", models.RoleUser)

	g := e.createGroup(t, alice, "servers")
	risk := e.createRisk(t, alice, gin.H{
		"asset_name": "srv1", "risk_level": "High", "impact": "Medium", "group_id": g,
	})
	path := "/api/risks/" + itoa(risk.ID)

	if w := e.do(t, http.MethodGet, path, bob, nil); w.Code != http.StatusForbidden {
		t.Errorf("foreign read: status %d, want 403", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/api/risks/999", bob, nil); w.Code != http.StatusNotFound {
		t.Errorf("missing id: status %d, want 404", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/api/risks/abc", alice, nil); w.Code != http.StatusNotFound {
		t.Errorf("non-numeric id: status %d, want 404", w.Code)
	}

	// partial update touches only the supplied field
	w := e.do(t, http.MethodPut, path, alice, gin.H{"mitigation_plan": "patch weekly"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", w.Code, w.Body.String())
	}
	updated := decode[models.Risk](t, w)
	if updated.MitigationPlan == nil || *updated.MitigationPlan != "patch weekly" {
		t.Errorf("mitigation plan not applied: %+v", updated.MitigationPlan)
	}
	if updated.AssetName != "srv1" || updated.RiskLevel != "High" || updated.Impact != "Medium" {
		t.Errorf("partial update touched other fields: %+v", updated)
	}

	if w := e.do(t, http.MethodPut, path, bob, gin.H{"asset_name": "pwned"}); w.Code != http.StatusForbidden {
		t.Errorf("foreign update: status %d, want 403", w.Code)
	}

	if w := e.do(t, http.MethodDelete, path, bob, nil); w.Code != http.StatusForbidden {
		t.Errorf("foreign delete: status %d, want 403", w.Code)
	}
	if w := e.do(t, http.MethodGet, path, alice, nil); w.Code != http.StatusOK {
		t.Errorf("risk gone after denied delete: status %d", w.Code)
	}

	if w := e.do(t, http.MethodDelete, path, alice, nil); w.Code != http.StatusOK {
		t.Errorf("owner delete: status %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, path, alice, nil); w.Code != http.StatusNotFound {
		t.Errorf("read after delete: status %d, want 404", w.Code)
	}
	if w := e.do(t, http.MethodDelete, "/api/risks/999", alice, nil); w.Code != http.StatusNotFound {
		t.Errorf("delete missing id: status %d, want 404", w.Code)
	}
}

func TestGroupEndpoints(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice@example.com", models.RoleUser)
	bob := e.user(t, "bob@example.com", models.RoleUser)
	admin := e.user(t, "root@example.com", models.RoleAdmin)

	w := e.do(t, http.MethodPost, "/api/risk_groups", alice, gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("create group without name: status %d, want 400", w.Code)
	}

	g := e.createGroup(t, alice, "servers")
	e.createRisk(t, alice, gin.H{"asset_name": "srv1", "risk_level": "High", "group_id": g})
	e.createRisk(t, alice, gin.H{"asset_name": "srv2", "group_id": g})

	gpath := "/api/risk_groups/" + itoa(g)

	if w := e.do(t, http.MethodGet, gpath, bob, nil); w.Code != http.StatusForbidden {
		t.Errorf("foreign group read: status %d, want 403", w.Code)
	}
	if w := e.do(t, http.MethodGet, gpath, admin, nil); w.Code != http.StatusOK {
		t.Errorf("admin group read: status %d, want 200", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/api/risk_groups/999", alice, nil); w.Code != http.StatusNotFound {
		t.Errorf("missing group: status %d, want 404", w.Code)
	}

	w = e.do(t, http.MethodGet, gpath+"/risks", alice, nil)
	if risks := decode[[]models.Risk](t, w); len(risks) != 2 {
		t.Errorf("group risks = %d, want 2", len(risks))
	}

	w = e.do(t, http.MethodGet, gpath+"/summary", alice, nil)
	summary := decode[struct {
		TotalRisks int `json:"total_risks"`
		HighRisks  int `json:"high_risks"`
	}](t, w)
	if summary.TotalRisks != 2 || summary.HighRisks != 1 {
		t.Errorf("group summary = %+v, want total 2 high 1", summary)
	}

	// per-group aggregates carry the same owner-or-admin rule as detail
	if w := e.do(t, http.MethodGet, gpath+"/summary", bob, nil); w.Code != http.StatusForbidden {
		t.Errorf("foreign group summary: status %d, want 403", w.Code)
	}
	if w := e.do(t, http.MethodGet, gpath+"/stats", bob, nil); w.Code != http.StatusForbidden {
		t.Errorf("foreign group stats: status %d, want 403", w.Code)
	}

	w = e.do(t, http.MethodGet, gpath+"/stats", alice, nil)
	stats := decode[struct {
		Labels []string `json:"labels"`
		Data   []int    `json:"data"`
	}](t, w)
	wantLabels := []string{"Low", "High"}
	if len(stats.Labels) != 2 || stats.Labels[0] != wantLabels[0] || stats.Labels[1] != wantLabels[1] {
		t.Errorf("group stats labels = %v, want %v", stats.Labels, wantLabels)
	}

	w = e.do(t, http.MethodGet, gpath+"/stats_by_impact", alice, nil)
	impact := decode[struct {
		Labels []string `json:"labels"`
		Data   []int    `json:"data"`
	}](t, w)
	if len(impact.Labels) != 1 || impact.Labels[0] != "Low" || impact.Data[0] != 2 {
		t.Errorf("group impact stats = %+v, want labels [Low], data [2]", impact)
	}
}

func TestGlobalAggregates(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice@example.com", models.RoleUser)
	bob := e.user(t, "bob@example.com", models.RoleUser)

	ga := e.createGroup(t, alice, "a")
	gb := e.createGroup(t, bob, "b")
	e.createRisk(t, alice, gin.H{"asset_name": "a1", "risk_level": "High", "impact": "High", "group_id": ga})
	e.createRisk(t, alice, gin.H{"asset_name": "a2", "risk_level": "Medium", "group_id": ga})
	e.createRisk(t, bob, gin.H{"asset_name": "b1", "risk_level": "High", "group_id": gb})

	w := e.do(t, http.MethodGet, "/api/risks/summary", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary: status %d, body %s", w.Code, w.Body.String())
	}
	summary := decode[struct {
		TotalRisks int `json:"total_risks"`
		HighRisks  int `json:"high_risks"`
	}](t, w)
	if summary.TotalRisks != 2 || summary.HighRisks != 1 {
		t.Errorf("alice summary = %+v, want total 2 high 1", summary)
	}

	w = e.do(t, http.MethodGet, "/api/risks/stats", alice, nil)
	stats := decode[struct {
		Labels []string `json:"labels"`
		Data   []int    `json:"data"`
	}](t, w)
	if len(stats.Labels) != 2 || stats.Labels[0] != "Medium" || stats.Labels[1] != "High" {
		t.Errorf("alice stats labels = %v, want [Medium High]", stats.Labels)
	}

	w = e.do(t, http.MethodGet, "/api/risks/stats_by_impact", alice, nil)
	impact := decode[struct {
		Labels []string `json:"labels"`
		Data   []int    `json:"data"`
	}](t, w)
	if len(impact.Labels) != 2 || impact.Labels[0] != "Low" || impact.Labels[1] != "High" {
		t.Errorf("alice impact labels = %v, want [Low High]", impact.Labels)
	}
}

func TestAuditEndpoint(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice@example.com", models.RoleUser)
	admin := e.user(t, "root@example.com", models.RoleAdmin)

	g := e.createGroup(t, alice, "servers")
	e.createRisk(t, alice, gin.H{"asset_name": "srv1", "group_id": g})

	if w := e.do(t, http.MethodGet, "/api/audit", alice, nil); w.Code != http.StatusForbidden {
		t.Errorf("non-admin audit: status %d, want 403", w.Code)
	}

	w := e.do(t, http.MethodGet, "/api/audit", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin audit: status %d", w.Code)
	}
	logs := decode[[]models.AuditLog](t, w)
	if len(logs) != 2 {
		t.Errorf("audit entries = %d, want 2", len(logs))
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
