package catalog

import (
	"testing"

	"tradeops-api-server/internal/models"
)

func TestIsServiceProduct(t *testing.T) {
	tests := []struct {
		name        string
		productName string
		product     *models.Product
		want        bool
	}{
		{
			name:        "catalog says service",
			productName: "Managed Backup",
			product:     &models.Product{Name: "Managed Backup", ProductType: models.ProductTypeService},
			want:        true,
		},
		{
			name:        "catalog says physical",
			productName: "Camera X",
			product:     &models.Product{Name: "Camera X", ProductType: models.ProductTypePhysical},
			want:        false,
		},
		{
			// Catalog là nguồn chính thức: tên giống dịch vụ nhưng
			// productType physical thì vẫn là hàng vật lý.
			name:        "catalog overrides name match",
			productName: "Server Charges Kit",
			product:     &models.Product{Name: "Server Charges Kit", ProductType: models.ProductTypePhysical},
			want:        false,
		},
		{
			name:        "missing catalog entry falls back to name list",
			productName: "Cloud Charges",
			product:     nil,
			want:        true,
		},
		{
			name:        "empty productType falls back to name list",
			productName: "SIM Charges - Annual",
			product:     &models.Product{Name: "SIM Charges - Annual"},
			want:        true,
		},
		{
			name:        "unknown product defaults to physical",
			productName: "Router Z",
			product:     nil,
			want:        false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsServiceProduct(tc.productName, tc.product); got != tc.want {
				t.Errorf("IsServiceProduct(%q) = %v, want %v", tc.productName, got, tc.want)
			}
		})
	}
}

func TestMatchesServiceName(t *testing.T) {
	tests := []struct {
		productName string
		want        bool
	}{
		{"Server Charges", true},
		{"server charges", true},
		{"SERVER CHARGES - 12 months", true},
		{"Cloud Charges", true},
		{"SIM Charges", true},
		{"Camera X", false},
		{"Charges", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := MatchesServiceName(tc.productName); got != tc.want {
			t.Errorf("MatchesServiceName(%q) = %v, want %v", tc.productName, got, tc.want)
		}
	}
}
