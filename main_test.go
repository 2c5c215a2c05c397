package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"teslo/internal/config"
	"teslo/internal/database"
	"teslo/internal/logger"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DB_DRIVER", "sqlite")
	v.Set("DATABASE_DSN", database.SQLiteFileDSN(filepath.Join(t.TempDir(), "catalog.db")))
	v.Set("JWT_SECRET", "test_jwt_secret")
	v.Set("STATIC_DIR", filepath.Join(t.TempDir(), "products"))
	return config.FromViper(v)
}

func TestNewAppServesHealthAndRoutes(t *testing.T) {
	app, cleanup, err := newApp(context.Background(), testConfig(t), logger.Nop())
	require.NoError(t, err)
	defer cleanup()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "connected", health["database"])
	assert.Equal(t, "disabled", health["rabbitmq"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"title":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/seed", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestNewAppRejectsUnknownDrivers(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageDriver = "ftp"
	_, _, err := newApp(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.DBDriver = "oracle"
	_, _, err = newApp(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.StorageDriver = "s3"
	_, _, err = newApp(context.Background(), cfg, logger.Nop())
	assert.ErrorContains(t, err, "S3_BUCKET")
}
