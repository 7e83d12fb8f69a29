package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesanatorium/website/internal/web"
	"github.com/thesanatorium/website/models"
)

// --- Mock Repo ---

type MockProductRepo struct {
	SourceProducts []models.Product
	Err            error

	// Fields to capture call arguments
	lastCalledLimit int
	previewCalls    int
	listAllCalls    int
}

func (m *MockProductRepo) ListPreview(ctx context.Context, limit int) ([]models.Product, error) {
	m.previewCalls++
	m.lastCalledLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if limit < len(m.SourceProducts) {
		return m.SourceProducts[:limit], nil
	}
	return m.SourceProducts, nil
}

func (m *MockProductRepo) ListAll(ctx context.Context) ([]models.Product, error) {
	m.listAllCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SourceProducts, nil
}

func mockProducts(n int) []models.Product {
	categories := []string{models.CategoryFlowers, models.CategoryClothes, models.CategoryArt}
	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, models.Product{
			ID:       uint(i + 1),
			Name:     "Item " + string(rune('A'+i)),
			Price:    decimal.NewFromFloat(12.5 + float64(i)),
			Category: categories[i%len(categories)],
		})
	}
	return products
}

func newTestHandler(t *testing.T, repo ProductProvider) *CatalogHandler {
	t.Helper()
	rn, err := web.NewRenderer()
	require.NoError(t, err)
	return NewCatalogHandler(repo, rn)
}

// --- Tests ---

func TestHandleHome(t *testing.T) {
	testCases := []struct {
		name          string
		products      []models.Product
		repoErr       error
		expectedCode  int
		expectedShown int
		expectedText  string
	}{
		{
			name:          "Preview is capped",
			products:      mockProducts(9),
			expectedCode:  http.StatusOK,
			expectedShown: 6,
			expectedText:  "Item A",
		},
		{
			name:          "Fewer products than the cap",
			products:      mockProducts(2),
			expectedCode:  http.StatusOK,
			expectedShown: 2,
			expectedText:  "13.50",
		},
		{
			name:          "Empty boutique",
			expectedCode:  http.StatusOK,
			expectedShown: 0,
			expectedText:  "Our shelves are being restocked.",
		},
		{
			name:         "Repository error",
			repoErr:      errors.New("database connection failed"),
			expectedCode: http.StatusInternalServerError,
			expectedText: "failed to get products",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockProductRepo{SourceProducts: tc.products, Err: tc.repoErr}
			handler := newTestHandler(t, repo)

			rec := httptest.NewRecorder()
			handler.HandleHome(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, models.HomePreviewLimit, repo.lastCalledLimit)
			assert.Zero(t, repo.listAllCalls)

			body := rec.Body.String()
			assert.Contains(t, body, tc.expectedText)
			if tc.expectedCode == http.StatusOK {
				assert.Equal(t, tc.expectedShown, strings.Count(body, `class="product-item"`))
			}
			assert.NotContains(t, body, "database connection failed")
		})
	}
}

func TestHandleProducts(t *testing.T) {
	t.Run("AllProductsWithFilters", func(t *testing.T) {
		repo := &MockProductRepo{SourceProducts: mockProducts(9)}
		handler := newTestHandler(t, repo)

		rec := httptest.NewRecorder()
		handler.HandleProducts(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, repo.listAllCalls)
		assert.Zero(t, repo.previewCalls)

		body := rec.Body.String()
		assert.Equal(t, 9, strings.Count(body, `class="product-item"`))
		assert.Contains(t, body, `data-filter="flowers"`)
		assert.Contains(t, body, `data-filter="clothes"`)
		assert.Contains(t, body, `data-filter="art"`)
		assert.NotContains(t, body, `data-filter="accessories"`, "only categories in stock get a filter")
		assert.Contains(t, body, "Flowers")
	})

	t.Run("Empty", func(t *testing.T) {
		handler := newTestHandler(t, &MockProductRepo{})

		rec := httptest.NewRecorder()
		handler.HandleProducts(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Our shelves are being restocked.")
	})

	t.Run("RepositoryError", func(t *testing.T) {
		handler := newTestHandler(t, &MockProductRepo{Err: errors.New("database connection failed")})

		rec := httptest.NewRecorder()
		handler.HandleProducts(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "failed to get products")
	})
}
