// server/internal/api/handlers/renewal_handler.go
package handlers

import (
	"context"
	"net/http"

	"tradeops-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RenewalHandler struct {
	DB *mongo.Database
}

// GetAllRenewals lấy danh sách renewal, lọc theo status hoặc orderID.
func (h *RenewalHandler) GetAllRenewals(c *gin.Context) {
	filter := bson.M{}

	// Ví dụ: /renewals?status=Active
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if orderID := c.Query("orderID"); orderID != "" {
		filter["orderID"] = orderID
	}

	opts := options.Find().SetSort(bson.M{"renewalEndDate": 1})
	collection := h.DB.Collection("renewals")
	cursor, err := collection.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query renewals"})
		return
	}
	defer cursor.Close(context.Background())

	var renewals []models.Renewal
	if err = cursor.All(context.Background(), &renewals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode renewals"})
		return
	}
	if renewals == nil {
		renewals = []models.Renewal{}
	}
	c.JSON(http.StatusOK, renewals)
}

// GetRenewalsByOrder lấy các renewal của một đơn hàng.
func (h *RenewalHandler) GetRenewalsByOrder(c *gin.Context) {
	orderID := c.Param("id")

	collection := h.DB.Collection("renewals")
	cursor, err := collection.Find(context.Background(), bson.M{"orderID": orderID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query renewals"})
		return
	}
	defer cursor.Close(context.Background())

	var renewals []models.Renewal
	if err = cursor.All(context.Background(), &renewals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode renewals"})
		return
	}
	if renewals == nil {
		renewals = []models.Renewal{}
	}
	c.JSON(http.StatusOK, renewals)
}
