// server/internal/api/handlers/inventory_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tradeops-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type InventoryHandler struct {
	DB *mongo.Database
}

type IntakeRequest struct {
	ProductName   string   `json:"productName" binding:"required"`
	Category      string   `json:"category"`
	SerialNumbers []string `json:"serialNumbers" binding:"required,min=1"`
}

// Intake nhập một lô thiết bị cùng sản phẩm vào kho.
// Serial trùng với item đã có sẽ làm cả request bị từ chối.
func (h *InventoryHandler) Intake(c *gin.Context) {
	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("stock_items")

	count, err := collection.CountDocuments(context.Background(), bson.M{
		"serialNumber": bson.M{"$in": req.SerialNumbers},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking serial numbers"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("%d serial number(s) already exist in inventory", count)})
		return
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(req.SerialNumbers))
	for _, serial := range req.SerialNumbers {
		docs = append(docs, models.StockItem{
			SerialNumber: serial,
			ProductName:  req.ProductName,
			Category:     req.Category,
			Status:       models.StatusInStock,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if _, err := collection.InsertMany(context.Background(), docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add items to inventory"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("%d item(s) added to inventory", len(docs)),
	})
}

// GetAllItems lấy danh sách thiết bị trong kho, lọc theo status/productName.
func (h *InventoryHandler) GetAllItems(c *gin.Context) {
	filter := bson.M{}

	// Ví dụ: /inventory?status=In Stock&productName=Camera X
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if productName := c.Query("productName"); productName != "" {
		filter["productName"] = productName
	}
	if orderID := c.Query("orderID"); orderID != "" {
		filter["orderID"] = orderID
	}

	collection := h.DB.Collection("stock_items")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory"})
		return
	}
	defer cursor.Close(context.Background())

	var items []models.StockItem
	if err = cursor.All(context.Background(), &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode inventory"})
		return
	}
	if items == nil {
		items = []models.StockItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GetItemBySerial lấy một thiết bị theo serial number.
func (h *InventoryHandler) GetItemBySerial(c *gin.Context) {
	serial := c.Param("serial")

	collection := h.DB.Collection("stock_items")
	var item models.StockItem
	err := collection.FindOne(context.Background(), bson.M{"serialNumber": serial}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in inventory"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		return
	}
	c.JSON(http.StatusOK, item)
}
