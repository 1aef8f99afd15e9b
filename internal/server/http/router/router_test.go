package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/passmint/internal/config"
	pkgAuth "github.com/polkiloo/passmint/internal/pkg/auth"
	"github.com/polkiloo/passmint/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/passmint/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.NewPassmintFacadeStub()
	cfg := &config.Config{MtopDecimals: 18}
	engine := Setup(facade, cfg, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/tiers/SHORT/quote", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for quote, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for status, got %d", resp.Code)
	}

	body, _ := json.Marshal(map[string]string{"buyer": "b", "recipient": "r", "tier": "SHORT", "payment": "15"})
	req = httptest.NewRequest(http.MethodPost, "/api/passes/purchase", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for purchase, got %d", resp.Code)
	}
}

func TestSetupGuardsAdminRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.NewPassmintFacadeStub()
	facade.VerifyFn = func(key string) error {
		if key != "root-key" {
			return pkgAuth.ErrNotAuthorized
		}
		return nil
	}
	engine := Setup(facade, &config.Config{MtopDecimals: 18}, logger)

	body, _ := json.Marshal(map[string]string{"recipient": "vip", "tier": "PRIVILEGED"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/passes/grant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without key, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/passes/grant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer wrong")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 with wrong key, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/passes/grant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer root-key")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 with valid key, got %d", resp.Code)
	}
}

var _ handlers.PassmintFacade = (*testhelpers.PassmintFacadeStub)(nil)
