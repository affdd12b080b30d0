package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/repository/memory"
	"github.com/medflow-hq/medflow/internal/server/handlers"
	"github.com/medflow-hq/medflow/internal/server/router"
	activitysvc "github.com/medflow-hq/medflow/internal/service/activity"
	assistantsvc "github.com/medflow-hq/medflow/internal/service/assistant"
	authsvc "github.com/medflow-hq/medflow/internal/service/auth"
	backupsvc "github.com/medflow-hq/medflow/internal/service/backup"
	insightsvc "github.com/medflow-hq/medflow/internal/service/insights"
	inventorysvc "github.com/medflow-hq/medflow/internal/service/inventory"
)

func newTestEngine(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	activityLog := activitysvc.NewService(store, nil)
	inventorySvc := inventorysvc.NewService(store, activityLog, nil)
	authService := authsvc.NewService(store, activityLog, nil)
	require.NoError(t, authService.EnsureDefaultAdmin(context.Background()))

	return router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authService, nil),
		Inventory: handlers.NewInventoryHandler(inventorySvc, nil),
		Dashboard: handlers.NewDashboardHandler(inventorySvc, insightsvc.NewService(nil), activityLog, nil),
		Assistant: handlers.NewAssistantHandler(assistantsvc.NewService(nil), inventorySvc, nil),
		Backup:    handlers.NewBackupHandler(backupsvc.NewService(store, activityLog, nil, nil), nil),
	}, authService, nil)
}

func doJSON(t *testing.T, engine http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, engine http.Handler) string {
	t.Helper()

	rec := doJSON(t, engine, http.MethodPost, "/api/login", "", map[string]string{
		"username": "admin",
		"password": "123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestHealthz(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Credentials")
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/inventory", "not-a-session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInventoryLifecycleOverHTTP(t *testing.T) {
	engine := newTestEngine(t)
	token := login(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/inventory", token, models.Medicine{
		Name:     "Paracetamol",
		Category: models.CategoryTablet,
		Batch:    "B-7",
		Expiry:   "2027-04-01",
		Stock:    5,
		Price:    2.50,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Medicine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	rec = doJSON(t, engine, http.MethodGet, "/api/inventory?q=para", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Paracetamol")

	rec = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/inventory/%d", created.ID), token, map[string]int{"stock": 30})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, engine, http.MethodPut, "/api/inventory/not-a-number", token, map[string]int{"stock": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/inventory/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/inventory/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/activity", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), models.ActionAddItem)
	assert.Contains(t, rec.Body.String(), models.ActionDeleteItem)
	assert.Contains(t, rec.Body.String(), "Super Admin")
}

func TestAssistantAndBackupOverHTTP(t *testing.T) {
	engine := newTestEngine(t)
	token := login(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/inventory", token, models.Medicine{
		Name: "Paracetamol", Category: models.CategoryTablet, Batch: "B-7",
		Expiry: "2027-04-01", Stock: 5, Price: 2.50,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/assistant", token, map[string]string{"query": "stock of paracetamol"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Low Stock")

	rec = doJSON(t, engine, http.MethodGet, "/api/backup", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "medflow_backup_")

	var bundle models.Backup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bundle))
	assert.Len(t, bundle.Inventory, 1)
	assert.Len(t, bundle.Users, 1)

	rec = doJSON(t, engine, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lowStockCount":1`)

	rec = doJSON(t, engine, http.MethodGet, "/api/insights", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Market Intelligence")

	rec = doJSON(t, engine, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
