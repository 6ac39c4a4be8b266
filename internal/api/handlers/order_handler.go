// server/internal/api/handlers/order_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tradeops-api-server/internal/dispatch"
	"tradeops-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderHandler struct {
	DB       *mongo.Database
	Dispatch *dispatch.Service
}

type OrderLinePayload struct {
	ProductName string `json:"productName" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	CustomerCode string             `json:"customerCode" binding:"required"`
	CustomerName string             `json:"customerName" binding:"required"`
	Items        []OrderLinePayload `json:"items" binding:"required,min=1"`
	CourierCost  float64            `json:"courierCost"`
}

// CreateOrder tạo một đơn hàng mới ở trạng thái OPEN.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]models.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}

	newOrder := models.SalesOrder{
		OrderID:      fmt.Sprintf("SO-%s", strings.ToUpper(uuid.New().String()[:8])),
		CustomerCode: req.CustomerCode,
		CustomerName: req.CustomerName,
		Items:        items,
		CourierCost:  req.CourierCost,
		Status:       models.OrderStatusOpen,
		CreatedBy:    c.GetString("user_email"),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	collection := h.DB.Collection("sales_orders")
	result, err := collection.InsertOne(context.Background(), newOrder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newOrder.ID = oid
	}

	c.JSON(http.StatusCreated, newOrder)
}

// GetAllOrders lấy danh sách đơn hàng, có thể lọc theo trạng thái.
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	filter := bson.M{}

	// Ví dụ: /orders?status=OPEN
	status := c.Query("status")
	if status != "" {
		filter["status"] = status
	}

	collection := h.DB.Collection("sales_orders")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}
	defer cursor.Close(context.Background())

	var orders []models.SalesOrder
	if err = cursor.All(context.Background(), &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders"})
		return
	}

	// Đảm bảo trả về một mảng rỗng thay vì null nếu không có kết quả
	if orders == nil {
		orders = []models.SalesOrder{}
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrderByID lấy chi tiết một đơn hàng theo orderID.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID := c.Param("id")

	collection := h.DB.Collection("sales_orders")
	var order models.SalesOrder
	err := collection.FindOne(context.Background(), bson.M{"orderID": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrderRequirements xem trước các dòng yêu cầu đã phân loại của đơn
// hàng (không mở phiên quét).
func (h *OrderHandler) GetOrderRequirements(c *gin.Context) {
	orderID := c.Param("id")

	collection := h.DB.Collection("sales_orders")
	var order models.SalesOrder
	err := collection.FindOne(context.Background(), bson.M{"orderID": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}

	lines := h.Dispatch.Resolve(context.Background(), &order)
	c.JSON(http.StatusOK, gin.H{"orderID": order.OrderID, "lines": lines})
}
