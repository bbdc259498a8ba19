package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"SehatCare/config"
	"SehatCare/server"
	"SehatCare/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:              "test",
		Port:             "5000",
		JWTSecret:        "secret",
		AllowedOrigins:   []string{"http://localhost:5173"},
		UploadDir:        t.TempDir(),
		UnsafeRadius:     40,
		BufferDistance:   20,
		AIRateLimit:      1,
		AIRateBurst:      1,
		VaultBackend:     "pinata",
		PinataJWT:        "pinata-token",
		PinataAPI:        "http://127.0.0.1:1",
		SigningKeyPath:   filepath.Join(t.TempDir(), "keys", "signing.pem"),
		ReminderSchedule: "0 8 * * *",
	}
}

func TestRun_FullCoverage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	isTest = true
	prevStart := startServer
	defer func() {
		isTest = false
		startServer = prevStart
	}()
	config.Set(testConfig(t))

	var capturedOpts server.Options
	startServer = func(opts server.Options) {
		capturedOpts = opts
	}

	main()

	assert.False(t, capturedOpts.JobsEnabled)
	assert.False(t, capturedOpts.MigrationEnabled)
	capturedOpts.JobsHandler()
	capturedOpts.MigrationHandler()

	r := gin.New()
	capturedOpts.WebServerPreHandler(r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWireAppliesConfiguration(t *testing.T) {
	cfg := testConfig(t)
	prevVault := services.Vault
	defer func() { services.Vault = prevVault }()

	wire(context.Background(), cfg)

	assert.Equal(t, cfg.UploadDir, services.UploadRoot)
	assert.Equal(t, 60.0, services.SafetyThreshold())
	require.NotNil(t, services.Vault)
	assert.FileExists(t, cfg.SigningKeyPath)
}
