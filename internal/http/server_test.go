package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "fintrack/internal/log"
	"fintrack/internal/report"
	"fintrack/internal/storage"
)

func newTestServer(t *testing.T, reporter report.Renderer) *Server {
	t.Helper()
	logger := applog.New(applog.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})
	return NewServer(":0", storage.NewMemoryStore(), reporter, logger)
}

type testRequest struct {
	method string
	path   string
	userID string
	body   any
}

func do(t *testing.T, s *Server, req testRequest) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(req.method, req.path, body)
	if req.userID != "" {
		r.Header.Set(IdentityHeader, req.userID)
	}
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, s *Server, username string) {
	t.Helper()
	w := do(t, s, testRequest{"POST", "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)

	registerUser(t, s, "alice")

	w := do(t, s, testRequest{"POST", "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "x",
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username or email already exists", decodeBody(t, w)["error"])

	w = do(t, s, testRequest{"POST", "/api/auth/register", "", map[string]string{
		"username": "bob",
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", decodeBody(t, w)["error"])

	w = do(t, s, testRequest{"POST", "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret123",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Login successful", body["message"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password_hash")

	w = do(t, s, testRequest{"POST", "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])

	w = do(t, s, testRequest{"POST", "/api/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "secret123",
	}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentityHeaderRules(t *testing.T) {
	s := newTestServer(t, nil)

	for name, header := range map[string]string{
		"missing":     "",
		"non numeric": "abc",
		"zero":        "0",
	} {
		t.Run(name, func(t *testing.T) {
			w := do(t, s, testRequest{"GET", "/api/expenses", header, nil})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
		})
	}
}

func TestExpenseLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	registerUser(t, s, "alice")

	// Field presence beats identity on create.
	w := do(t, s, testRequest{"POST", "/api/expenses", "", map[string]any{
		"amount": 50.0,
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", decodeBody(t, w)["error"])

	w = do(t, s, testRequest{"POST", "/api/expenses", "", map[string]any{
		"amount": 50.0, "description": "lunch", "category": "Food",
	}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	before := time.Now().UTC()
	w = do(t, s, testRequest{"POST", "/api/expenses", "1", map[string]any{
		"amount": 50.0, "description": "lunch", "category": "Food",
	}})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, 50.0, created["amount"])
	assert.Equal(t, "Food", created["category"])
	createdAt, err := time.Parse(time.RFC3339, created["date"].(string))
	require.NoError(t, err)
	assert.False(t, createdAt.Before(before.Truncate(time.Second)))

	// Unparseable dates also fall back to now instead of failing.
	w = do(t, s, testRequest{"POST", "/api/expenses", "1", map[string]any{
		"amount": 12.5, "description": "coffee", "category": "Food", "date": "not-a-date",
	}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, s, testRequest{"GET", "/api/expenses", "1", nil})
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)

	// Partial update patches only the provided fields.
	w = do(t, s, testRequest{"PUT", "/api/expenses/1", "1", map[string]any{
		"amount": 60.0,
	}})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, 60.0, updated["amount"])
	assert.Equal(t, "lunch", updated["description"])
	assert.Equal(t, "Food", updated["category"])

	// An empty update body leaves the record untouched.
	w = do(t, s, testRequest{"PUT", "/api/expenses/1", "1", map[string]any{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 60.0, decodeBody(t, w)["amount"])

	w = do(t, s, testRequest{"DELETE", "/api/expenses/1", "1", nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Expense deleted successfully", decodeBody(t, w)["message"])

	w = do(t, s, testRequest{"DELETE", "/api/expenses/1", "1", nil})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Record not found", decodeBody(t, w)["error"])
}

func TestExpenseOwnershipIsolation(t *testing.T) {
	s := newTestServer(t, nil)
	registerUser(t, s, "alice")
	registerUser(t, s, "bob")

	w := do(t, s, testRequest{"POST", "/api/expenses", "1", map[string]any{
		"amount": 50.0, "description": "lunch", "category": "Food",
	}})
	require.Equal(t, http.StatusCreated, w.Code)

	// Bob sees none of Alice's records and cannot touch them.
	w = do(t, s, testRequest{"GET", "/api/expenses", "2", nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = do(t, s, testRequest{"PUT", "/api/expenses/1", "2", map[string]any{"amount": 1.0}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, testRequest{"DELETE", "/api/expenses/1", "2", nil})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, testRequest{"GET", "/api/expenses", "1", nil})
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestIncomeCreatePreservesExplicitDate(t *testing.T) {
	s := newTestServer(t, nil)
	registerUser(t, s, "alice")

	w := do(t, s, testRequest{"POST", "/api/income", "1", map[string]any{
		"amount":      2000.0,
		"description": "salary",
		"date":        "2024-01-15T00:00:00Z",
	}})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 2000.0, body["amount"])
	assert.Equal(t, "2024-01-15T00:00:00Z", body["date"])
	assert.NotContains(t, body, "category")

	w = do(t, s, testRequest{"PUT", "/api/income/1", "1", map[string]any{
		"description": "bonus",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "bonus", body["description"])
	assert.Equal(t, "2024-01-15T00:00:00Z", body["date"])

	w = do(t, s, testRequest{"DELETE", "/api/income/1", "1", nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Income deleted successfully", decodeBody(t, w)["message"])
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t, nil)
	registerUser(t, s, "alice")

	w := do(t, s, testRequest{"GET", "/api/dashboard", "", nil})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	for _, exp := range []map[string]any{
		{"amount": 50.0, "description": "lunch", "category": "Food", "date": "2024-01-10T00:00:00Z"},
		{"amount": 30.0, "description": "bus", "category": "Transport", "date": "2024-01-12T00:00:00Z"},
		{"amount": 20.0, "description": "snacks", "category": "Food", "date": "2024-01-14T00:00:00Z"},
	} {
		res := do(t, s, testRequest{"POST", "/api/expenses", "1", exp})
		require.Equal(t, http.StatusCreated, res.Code)
	}
	res := do(t, s, testRequest{"POST", "/api/income", "1", map[string]any{
		"amount": 500.0, "description": "salary", "date": "2024-01-15T00:00:00Z",
	}})
	require.Equal(t, http.StatusCreated, res.Code)

	w = do(t, s, testRequest{"GET", "/api/dashboard", "1", nil})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 400.0, body["balance"])
	assert.Equal(t, 500.0, body["totalIncome"])
	assert.Equal(t, 100.0, body["totalExpenses"])
	assert.Equal(t, map[string]any{"Food": 70.0, "Transport": 30.0}, body["categoryTotals"])

	recent, ok := body["recentTransactions"].([]any)
	require.True(t, ok)
	require.Len(t, recent, 4)
	first, ok := recent[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "income", first["type"])
	assert.Equal(t, "Income", first["category"])
}

func TestChartEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	registerUser(t, s, "alice")

	// No identity and no data both yield a null image.
	w := do(t, s, testRequest{"GET", "/api/chart/expense-categories", "", nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"image": null}`, w.Body.String())

	w = do(t, s, testRequest{"GET", "/api/chart/expense-categories", "1", nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"image": null}`, w.Body.String())

	res := do(t, s, testRequest{"POST", "/api/expenses", "1", map[string]any{
		"amount": 50.0, "description": "lunch", "category": "Food", "date": "2024-01-10T00:00:00Z",
	}})
	require.Equal(t, http.StatusCreated, res.Code)
	res = do(t, s, testRequest{"POST", "/api/income", "1", map[string]any{
		"amount": 500.0, "description": "salary", "date": "2024-01-15T00:00:00Z",
	}})
	require.Equal(t, http.StatusCreated, res.Code)

	for _, kind := range []string{
		"expense-categories",
		"income-sources",
		"income-by-month",
		"expense-trends",
		"daily-expenses",
		"income-vs-expenses",
	} {
		t.Run(kind, func(t *testing.T) {
			w := do(t, s, testRequest{"GET", "/api/chart/" + kind, "1", nil})
			require.Equal(t, http.StatusOK, w.Code)
			body := decodeBody(t, w)
			encoded, ok := body["image"].(string)
			require.True(t, ok, "expected a rendered image")
			png, err := base64.StdEncoding.DecodeString(encoded)
			require.NoError(t, err)
			require.Greater(t, len(png), 8)
			assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
		})
	}

	w = do(t, s, testRequest{"GET", "/api/chart/bogus", "1", nil})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportEndpoint(t *testing.T) {
	noRenderer := newTestServer(t, nil)
	w := do(t, noRenderer, testRequest{"GET", "/api/report/pdf", "1", nil})
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "PDF generation not available", decodeBody(t, w)["error"])

	s := newTestServer(t, report.PDFRenderer{})
	registerUser(t, s, "alice")

	w = do(t, s, testRequest{"GET", "/api/report/pdf", "", nil})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	res := do(t, s, testRequest{"POST", "/api/expenses", "1", map[string]any{
		"amount": 50.0, "description": "lunch", "category": "Food",
	}})
	require.Equal(t, http.StatusCreated, res.Code)

	w = do(t, s, testRequest{"GET", "/api/report/pdf", "1", nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "expense_report.pdf")
	require.Greater(t, w.Body.Len(), 4)
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, testRequest{"GET", "/healthz", "", nil})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, testRequest{"GET", "/readyz", "", nil})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
