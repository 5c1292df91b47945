package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"katalog/internal/app"
	"katalog/internal/config"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey    = "test-api-key"
	testAPIHeader = "X-API-Key"
)

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupApp builds the app over a fresh in-memory repository. When seed is true
// the two startup products are inserted.
func setupApp(t *testing.T, seed bool) (*fiber.App, *repositories.MemoryProductRepository) {
	t.Helper()
	repo := repositories.NewMemoryProductRepository()
	if seed {
		require.NoError(t, app.SeedProducts(repo))
	}
	cfg := &config.Config{APIKey: testAPIKey, APIKeyHeader: testAPIHeader}
	return app.NewApp(cfg, services.NewProductService(repo, nil)), repo
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, path string, body interface{}, authed bool) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set(testAPIHeader, testAPIKey)
	}
	resp, err := fiberApp.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func validProduct() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Smartphone",
		"description": "Latest model smartphone",
		"price":       799.99,
		"category":    "Electronics",
		"inStock":     true,
	}
}

func TestRoot(t *testing.T) {
	fiberApp, _ := setupApp(t, true)

	resp := doRequest(t, fiberApp, http.MethodGet, "/", nil, false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the Product API", string(body))
}

func TestHealthCheck(t *testing.T) {
	fiberApp, _ := setupApp(t, false)

	resp := doRequest(t, fiberApp, http.MethodGet, "/health", nil, false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]string
	decode(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])
}

func TestCreateProduct(t *testing.T) {
	fiberApp, repo := setupApp(t, true)
	before, err := repo.GetAll()
	require.NoError(t, err)

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/products", validProduct(), true)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	decode(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	for _, p := range before {
		assert.NotEqual(t, p.ID, created.ID)
	}
	assert.Equal(t, "Smartphone", created.Name)
	assert.Equal(t, 799.99, created.Price)

	// The new product is readable by its ID.
	resp = doRequest(t, fiberApp, http.MethodGet, "/api/products/"+created.ID, nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	decode(t, resp, &fetched)
	assert.Equal(t, created, fetched)
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		want    map[string]string
	}{
		{
			name:    "missing name",
			payload: map[string]interface{}{"description": "x", "price": 10, "category": "c", "inStock": true},
			want:    map[string]string{"name": "Name is required"},
		},
		{
			name:    "zero price",
			payload: map[string]interface{}{"name": "n", "description": "x", "price": 0, "category": "c", "inStock": true},
			want:    map[string]string{"price": "Price must be a positive number"},
		},
		{
			name:    "negative price",
			payload: map[string]interface{}{"name": "n", "description": "x", "price": -5, "category": "c", "inStock": true},
			want:    map[string]string{"price": "Price must be a positive number"},
		},
		{
			name:    "truthy inStock",
			payload: map[string]interface{}{"name": "n", "description": "x", "price": 1, "category": "c", "inStock": "true"},
			want:    map[string]string{"inStock": "inStock must be a boolean"},
		},
		{
			name:    "several fields",
			payload: map[string]interface{}{"name": "n", "inStock": true},
			want: map[string]string{
				"description": "Description is required",
				"price":       "Price is required",
				"category":    "Category is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fiberApp, repo := setupApp(t, true)

			resp := doRequest(t, fiberApp, http.MethodPost, "/api/products", tt.payload, true)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body struct {
				Message string            `json:"message"`
				Errors  map[string]string `json:"errors"`
			}
			decode(t, resp, &body)
			assert.Equal(t, "Validation failed", body.Message)
			assert.Equal(t, tt.want, body.Errors)

			products, err := repo.GetAll()
			require.NoError(t, err)
			assert.Len(t, products, 2)
		})
	}
}

func TestCreateProduct_MalformedBody(t *testing.T) {
	fiberApp, _ := setupApp(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(testAPIHeader, testAPIKey)
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetProduct_NotFound(t *testing.T) {
	fiberApp, _ := setupApp(t, true)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/products/does-not-exist", nil, false)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, map[string]interface{}{"message": "Product not found"}, body)
}

func TestListProducts_FilterAndSearch(t *testing.T) {
	fiberApp, _ := setupApp(t, true)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/products?category=Electronics&search=lap", nil, false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page models.ProductPage
	decode(t, resp, &page)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Laptop", page.Data[0].Name)
}

func TestListProducts_Pagination(t *testing.T) {
	fiberApp, _ := setupApp(t, true)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/products?limit=1&page=2", nil, false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page models.ProductPage
	decode(t, resp, &page)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 1, page.Limit)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Coffee Maker", page.Data[0].Name)
}

func TestListProducts_DefaultsAndEmptyPage(t *testing.T) {
	fiberApp, _ := setupApp(t, true)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/products?page=abc&limit=xyz", nil, false)
	var page models.ProductPage
	decode(t, resp, &page)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Data, 2)

	resp = doRequest(t, fiberApp, http.MethodGet, "/api/products?page=9", nil, false)
	var raw map[string]interface{}
	decode(t, resp, &raw)
	assert.Equal(t, []interface{}{}, raw["data"])
	assert.Equal(t, 2.0, raw["total"])
}

func TestStats(t *testing.T) {
	fiberApp, _ := setupApp(t, true)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/products/stats", nil, false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"totalProducts": 2,
		"categories": {"Electronics": 1, "Appliances": 1},
		"inStock": 1,
		"outOfStock": 1,
		"averagePrice": 524.99
	}`, string(body))
	assert.Contains(t, string(body), `"categories":{"Electronics":1,"Appliances":1}`)
}

func TestStats_EmptyStore(t *testing.T) {
	fiberApp, _ := setupApp(t, false)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/products/stats", nil, false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalProducts":0,"categories":{},"inStock":0,"outOfStock":0,"averagePrice":0}`, string(body))
}

func TestUpdateProduct(t *testing.T) {
	fiberApp, repo := setupApp(t, true)
	products, err := repo.GetAll()
	require.NoError(t, err)
	id := products[0].ID

	payload := validProduct()
	payload["inStock"] = false
	resp := doRequest(t, fiberApp, http.MethodPut, "/api/products/"+id, payload, true)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decode(t, resp, &updated)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "Smartphone", updated.Name)
	assert.False(t, updated.InStock)

	stored, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, updated, *stored)
}

func TestUpdateProduct_Failures(t *testing.T) {
	fiberApp, _ := setupApp(t, true)

	resp := doRequest(t, fiberApp, http.MethodPut, "/api/products/missing", validProduct(), true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, fiberApp, http.MethodPut, "/api/products/missing", map[string]interface{}{"name": "x"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteProduct(t *testing.T) {
	fiberApp, repo := setupApp(t, true)
	products, err := repo.GetAll()
	require.NoError(t, err)
	id := products[0].ID

	resp := doRequest(t, fiberApp, http.MethodDelete, "/api/products/"+id, nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)

	resp = doRequest(t, fiberApp, http.MethodGet, "/api/products/"+id, nil, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, fiberApp, http.MethodDelete, "/api/products/"+id, nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMutationsWithoutAuth(t *testing.T) {
	fiberApp, repo := setupApp(t, true)
	before, err := repo.GetAll()
	require.NoError(t, err)
	id := before[0].ID

	requests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/products", validProduct()},
		{http.MethodPost, "/api/products", map[string]interface{}{}},
		{http.MethodPut, "/api/products/" + id, validProduct()},
		{http.MethodDelete, "/api/products/" + id, nil},
	}
	for _, r := range requests {
		resp := doRequest(t, fiberApp, r.method, r.path, r.body, false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
	}

	after, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMutationsWithWrongKey(t *testing.T) {
	fiberApp, repo := setupApp(t, true)

	jsonBody, err := json.Marshal(validProduct())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(testAPIHeader, testAPIKey+"x")
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	products, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestUnknownRoute(t *testing.T) {
	fiberApp, _ := setupApp(t, false)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/unknown", nil, false)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// captureLog routes the standard logger into a buffer for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(io.Discard) })
	return &buf
}

func logLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestRequestLogging_UnauthorizedRequest(t *testing.T) {
	fiberApp, _ := setupApp(t, true)
	buf := captureLog(t)

	resp := doRequest(t, fiberApp, http.MethodDelete, "/api/products/x", nil, false)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} DELETE /api/products/x$`, lines[0])
}

func TestRequestLogging_NotFoundRequest(t *testing.T) {
	fiberApp, _ := setupApp(t, true)
	buf := captureLog(t)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/products/missing", nil, false)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "GET /api/products/missing")
}

func TestAccessLogFollowsStandardLogger(t *testing.T) {
	buf := captureLog(t)
	fiberApp, _ := setupApp(t, false)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/products/missing", nil, false)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	lines := logLines(buf)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "GET /api/products/missing")
	assert.Contains(t, lines[1], "404")
	assert.Contains(t, lines[1], "/api/products/missing")
}
