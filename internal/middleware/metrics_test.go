package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/products", "/api/products"},
		{"/api/products/42", "/api/products/:id"},
		{"/api/products/42/image", "/api/products/:id/image"},
		{"/api/products/category/2", "/api/products/category/:categoryID"},
		{"/api/categories", "/api/categories"},
		{"/api/categories/motorcycles", "/api/categories/:slug"},
		{"/api/reservations/0b6a8c2e", "/api/reservations/:id"},
		{"/api/cart", "/api/cart"},
		{"/api/cart/42", "/api/cart/:productId"},
		{"/api/cart/42/increment", "/api/cart/:productId/increment"},
		{"/api/vehicles/suggestions", "/api/vehicles/suggestions"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
