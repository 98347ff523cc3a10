package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harlansk/sleipnir/internal/domain"
)

func TestProductHandler_List(t *testing.T) {
	catalog := &catalogMock{
		ListProductsFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{
				{ID: "1", Name: "Honda CB500F", Price: 6799, Category: domain.CategoryMotorcycles},
				{ID: "2", Name: "iPhone 15 Pro", Price: 999, Category: domain.CategoryPhones},
			}, nil
		},
	}
	h := NewProductHandler(catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var products []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "Honda CB500F", products[0].Name)
}

func TestProductHandler_GetNotFound(t *testing.T) {
	catalog := &catalogMock{
		GetProductFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return nil, domain.NotFound("catalog.get_product", "product", "99")
		},
	}
	h := NewProductHandler(catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/99", nil)
	req.SetPathValue("id", "99")
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.ENOTFOUND, body["code"])
}

func TestProductHandler_GetRejectsNonNumericID(t *testing.T) {
	h := NewProductHandler(&catalogMock{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Create(t *testing.T) {
	var gotInput domain.ProductInput
	catalog := &catalogMock{
		CreateProductFunc: func(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
			gotInput = input
			return &domain.Product{ID: "7", Name: input.Name, Price: input.Price}, nil
		},
	}
	h := NewProductHandler(catalog, nil)

	body := `{"name":"Tesla Model 3","price":42990,"categoryId":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Tesla Model 3", gotInput.Name)
	assert.Equal(t, 42990.0, gotInput.Price)
}

func TestProductHandler_CreateValidation(t *testing.T) {
	created := false
	catalog := &catalogMock{
		CreateProductFunc: func(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
			created = true
			return nil, nil
		},
	}
	h := NewProductHandler(catalog, nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"missing name", `{"price":100,"categoryId":1}`},
		{"zero price", `{"name":"x","price":0,"categoryId":1}`},
		{"missing category", `{"name":"x","price":100}`},
		{"unknown status", `{"name":"x","price":100,"categoryId":1,"status":"gone"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Create(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, created, "catalog should not be called")
		})
	}
}

func TestProductHandler_UpdateImage(t *testing.T) {
	catalog := &catalogMock{
		UpdateProductImageFunc: func(ctx context.Context, id int, imageURL string) (*domain.Product, error) {
			return &domain.Product{ID: "3", Image: imageURL}, nil
		},
	}
	h := NewProductHandler(catalog, nil)

	body := `{"image":"https://example.com/cb500f.jpg"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/products/3/image", strings.NewReader(body))
	req.SetPathValue("id", "3")
	w := httptest.NewRecorder()
	h.UpdateImage(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var product domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "https://example.com/cb500f.jpg", product.Image)
}

func TestProductHandler_Delete(t *testing.T) {
	catalog := &catalogMock{
		DeleteProductFunc: func(ctx context.Context, id int) error { return nil },
	}
	h := NewProductHandler(catalog, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/3", nil)
	req.SetPathValue("id", "3")
	w := httptest.NewRecorder()
	h.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
