package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cargomart/internal/config"
	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/repository"
	"github.com/cargomart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}
}

func setupAuthMiddlewareTest(t *testing.T) (*service.AuthService, repository.UserRepository, *models.User) {
	t.Helper()
	dsn := fmt.Sprintf("file:router_auth_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	supplierID := uint(7)
	user := &models.User{
		Phone:        "+37129000009",
		Name:         "Ops",
		PasswordHash: "hash",
		Role:         constants.RoleSupplier,
		SupplierID:   &supplierID,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "router-middleware-test-secret-key-000"
	cfg.JWT.ExpireHours = 1
	userRepo := repository.NewUserRepository(db)
	return service.NewAuthService(cfg, userRepo), userRepo, user
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authSvc, userRepo, user := setupAuthMiddlewareTest(t)
	token, _, err := authSvc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	r := gin.New()
	r.Use(JWTAuthMiddleware("router-middleware-test-secret-key-000", userRepo))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     c.GetUint(userIDContextKey),
			"role":        c.GetString(userRoleContextKey),
			"supplier_id": c.GetUint(supplierIDContextKey),
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		UserID     uint   `json:"user_id"`
		Role       string `json:"role"`
		SupplierID uint   `json:"supplier_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.UserID != user.ID || resp.Role != constants.RoleSupplier || resp.SupplierID != 7 {
		t.Fatalf("unexpected identity: %+v", resp)
	}

	// missing header
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("gin always writes 200 envelopes, got %d", w.Code)
	}
	var envelope struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	if envelope.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", envelope.StatusCode)
	}

	// tampered token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	r.ServeHTTP(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	if envelope.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", envelope.StatusCode)
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin-only",
		func(c *gin.Context) { c.Set(userRoleContextKey, constants.RoleSupplier); c.Next() },
		RequireRoles(constants.RoleAdmin),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	r.GET("/supplier-ok",
		func(c *gin.Context) { c.Set(userRoleContextKey, constants.RoleSupplier); c.Next() },
		RequireRoles(constants.RoleSupplier, constants.RoleAdmin),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))
	var envelope struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	if envelope.StatusCode != 403 {
		t.Fatalf("status_code want 403 got %d", envelope.StatusCode)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/supplier-ok", nil))
	var ok struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &ok); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if !ok.OK {
		t.Fatalf("supplier should pass, got %s", w.Body.String())
	}
}
