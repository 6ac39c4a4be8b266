// server/internal/catalog/classifier.go
package catalog

import (
	"strings"

	"tradeops-api-server/internal/models"
)

// serviceNamePatterns là danh sách tên dịch vụ cũ, chỉ dùng làm fallback
// cho các sản phẩm chưa có trong catalog (đơn hàng lịch sử).
// Nguồn phân loại chính thức là Product.ProductType.
var serviceNamePatterns = []string{
	"server charges",
	"cloud charges",
	"sim charges",
}

// DefaultServiceCategory được gán cho dòng dịch vụ không có category trong catalog.
const DefaultServiceCategory = "Digital Service"

// IsServiceProduct quyết định một dòng đơn hàng là dịch vụ hay vật lý.
// Ưu tiên ProductType từ catalog; nếu product là nil thì rơi về so khớp tên.
func IsServiceProduct(productName string, product *models.Product) bool {
	if product != nil && product.ProductType != "" {
		return product.ProductType == models.ProductTypeService
	}
	return MatchesServiceName(productName)
}

// MatchesServiceName là luật so khớp tên cũ: substring, không phân biệt hoa thường.
func MatchesServiceName(productName string) bool {
	name := strings.ToLower(productName)
	for _, pattern := range serviceNamePatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}
