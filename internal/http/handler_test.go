package http

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdash/internal/api"
	"opdash/internal/domain"
	"opdash/internal/repository"
	"opdash/internal/services"
)

type testServer struct {
	server    *Server
	dashboard api.DashboardAPI
	gateway   *repository.MemoryGateway
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	gw := repository.NewMemoryGateway()
	dashboard, err := api.New(context.Background(), gw, api.Options{
		IDs:             services.NewSequenceGenerator("task-"),
		NotificationIDs: services.NewSequenceGenerator("note-"),
		Clock:           services.FixedClock{At: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)},
		Scheduler:       services.NewManualScheduler(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { dashboard.Close() })

	return &testServer{
		server:    NewServer(dashboard, "127.0.0.1:0"),
		dashboard: dashboard,
		gateway:   gw,
	}
}

func (ts *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestSnapshotEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decode[api.Snapshot](t, rec)
	assert.Equal(t, domain.SeedTasks(), snap.Active)
	assert.Equal(t, domain.SeedHistory(), snap.History)
	assert.Equal(t, 830, snap.Metrics.AssignedTotal)
	assert.Equal(t, domain.ThemeLight, snap.Theme)
}

func TestListEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		path  string
		count int
	}{
		{path: "/api/tasks", count: 5},
		{path: "/api/history", count: 2},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode[struct {
				Count int           `json:"count"`
				Tasks []domain.Task `json:"tasks"`
			}](t, rec)
			assert.Equal(t, tt.count, body.Count)
			assert.Len(t, body.Tasks, tt.count)
		})
	}
}

func TestChangeStatusEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		body         string
		expectedCode int
		applied      bool
		severity     domain.Severity
	}{
		{name: "moves to history", id: "1", body: `{"status":"Terminado"}`, expectedCode: http.StatusOK, applied: true, severity: domain.SeveritySuccess},
		{name: "english alias", id: "3", body: `{"status":"pending"}`, expectedCode: http.StatusOK, applied: true, severity: domain.SeverityInfo},
		{name: "rejected without worked units", id: "2", body: `{"status":"En Proceso"}`, expectedCode: http.StatusOK, severity: domain.SeverityError},
		{name: "unknown status", id: "1", body: `{"status":"Archivado"}`, expectedCode: http.StatusBadRequest},
		{name: "invalid json", id: "1", body: `{`, expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)

			rec := ts.do(t, http.MethodPost, "/api/tasks/"+tt.id+"/status", tt.body)
			require.Equal(t, tt.expectedCode, rec.Code, rec.Body.String())
			if tt.expectedCode != http.StatusOK {
				return
			}

			result := decode[api.Result](t, rec)
			assert.Equal(t, tt.applied, result.Applied)
			require.NotNil(t, result.Notification)
			assert.Equal(t, tt.severity, result.Notification.Severity)
		})
	}
}

func TestSaveTaskEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	body := `{"name":"Conteo","owner":"Diana Arteaga","assignedCount":40,"workedCount":0,"country":"SV","priority":"Alta","startDate":"2024-03-01","dueDate":"2024-03-05","status":"Pendiente"}`
	rec := ts.do(t, http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	result := decode[api.Result](t, rec)
	require.NotNil(t, result.Task)
	assert.Equal(t, "task-1", result.Task.ID)
	assert.Len(t, ts.dashboard.Active(), 6)

	edit := `{"id":"task-1","name":"Conteo","owner":"Diana Arteaga","assignedCount":40,"workedCount":10,"country":"SV","priority":"Alta","startDate":"2024-03-01","dueDate":"2024-03-05","status":"En Proceso"}`
	rec = ts.do(t, http.MethodPost, "/api/tasks", edit)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 10, ts.dashboard.Active()[5].WorkedCount)
}

func TestSaveTaskEndpoint_ValidationError(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/tasks", `{"name":"","owner":"x","country":"MX"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[struct {
		Code   string           `json:"code"`
		Fields []fieldErrorBody `json:"fields"`
	}](t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)

	fields := make(map[string]bool)
	for _, f := range body.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["country"])
}

func TestQuickAddEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/tasks/quick", `{"name":"Revisión","owner":"Steven Díaz"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	result := decode[api.Result](t, rec)
	assert.Equal(t, domain.CountryRegional, result.Task.Country)
	assert.Equal(t, "2024-03-04", result.Task.StartDate)
}

func TestDestructiveEndpointsRequireConfirm(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		activeLen  int
		historyLen int
		confirmed  bool
	}{
		{name: "delete unconfirmed", method: http.MethodDelete, path: "/api/tasks/1", activeLen: 5, historyLen: 2},
		{name: "delete confirmed", method: http.MethodDelete, path: "/api/tasks/1?confirm=true", activeLen: 4, historyLen: 2, confirmed: true},
		{name: "clear history unconfirmed", method: http.MethodPost, path: "/api/history/clear", activeLen: 5, historyLen: 2},
		{name: "clear history confirmed", method: http.MethodPost, path: "/api/history/clear?confirm=true", activeLen: 5, historyLen: 0, confirmed: true},
		{name: "clear active confirmed", method: http.MethodPost, path: "/api/tasks/clear?confirm=true", activeLen: 0, historyLen: 2, confirmed: true},
		{name: "reset confirmed", method: http.MethodPost, path: "/api/reset?confirm=true", activeLen: 5, historyLen: 2, confirmed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)

			rec := ts.do(t, tt.method, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			result := decode[api.Result](t, rec)
			assert.Equal(t, tt.confirmed, result.Applied)
			assert.Len(t, ts.dashboard.Active(), tt.activeLen)
			assert.Len(t, ts.dashboard.History(), tt.historyLen)
		})
	}
}

func TestEditSessionEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/tasks/3/edit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[api.EditSession](t, rec)
	assert.True(t, session.Open)
	assert.Equal(t, "3", session.Task.ID)

	rec = ts.do(t, http.MethodPost, "/api/session/close", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[api.EditSession](t, rec).Open)

	rec = ts.do(t, http.MethodPost, "/api/session/create", "")
	require.Equal(t, http.StatusOK, rec.Code)
	session = decode[api.EditSession](t, rec)
	assert.True(t, session.Open)
	assert.Nil(t, session.Task)

	rec = ts.do(t, http.MethodPost, "/api/tasks/h1/edit", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/tasks/2/status", `{"status":"Terminado"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	note := decode[api.Result](t, rec).Notification
	require.NotNil(t, note)

	rec = ts.do(t, http.MethodGet, "/api/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Notification](t, rec), 1)

	rec = ts.do(t, http.MethodDelete, "/api/notifications/"+note.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/notifications/"+note.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestThemeEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/theme/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dark", decode[themeRequest](t, rec).Theme)

	rec = ts.do(t, http.MethodPut, "/api/theme", `{"theme":"light"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ThemeLight, ts.dashboard.Theme())

	rec = ts.do(t, http.MethodPut, "/api/theme", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/export.csv?collection=history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 3)

	rec = ts.do(t, http.MethodGet, "/api/export.csv?collection=archive", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStorageFailureMapsTo500(t *testing.T) {
	ts := setupTestServer(t)
	ts.gateway.FailSaves(stderrors.New("disk full"))

	rec := ts.do(t, http.MethodPost, "/api/tasks/1/status", `{"status":"Terminado"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, ts.dashboard.Active(), 5)
}
