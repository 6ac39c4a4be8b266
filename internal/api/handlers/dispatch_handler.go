// server/internal/api/handlers/dispatch_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tradeops-api-server/internal/dispatch"
	"tradeops-api-server/internal/s3"
	"tradeops-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DispatchHandler struct {
	Service    *dispatch.Service
	Sessions   *dispatch.SessionManager
	Hub        *socket.Hub
	S3Uploader *s3.Uploader
	DB         *mongo.Database
}

type OpenSessionRequest struct {
	OrderID string `json:"orderID" binding:"required"`
}

type ScanRequest struct {
	SerialNumber string `json:"serialNumber"`
}

type BulkAllocateRequest struct {
	ProductName string `json:"productName" binding:"required"`
}

type ConfirmRequest struct {
	CourierPartner string `json:"courierPartner"`
	ShippingMode   string `json:"shippingMode"`
}

// OpenSession mở một phiên quét cho một đơn hàng đang mở.
func (h *DispatchHandler) OpenSession(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.Service.Open(context.Background(), req.OrderID)
	if err != nil {
		respondDispatchError(c, err)
		return
	}

	h.Sessions.Put(sess)
	c.JSON(http.StatusCreated, sessionView(sess))
}

// GetSession trả về trạng thái hiện tại của phiên.
func (h *DispatchHandler) GetSession(c *gin.Context) {
	sess, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": dispatch.ErrSessionNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

// Scan xử lý một lần nhập serial vào phiên.
func (h *DispatchHandler) Scan(c *gin.Context) {
	sess, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": dispatch.ErrSessionNotFound.Error()})
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Service.Scan(context.Background(), sess, req.SerialNumber)
	if err != nil {
		respondDispatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"item":    item,
		"session": sessionView(sess),
	})
}

// Unscan gỡ một serial đã quét khỏi phiên.
func (h *DispatchHandler) Unscan(c *gin.Context) {
	sess, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": dispatch.ErrSessionNotFound.Error()})
		return
	}

	serial := c.Param("serial")
	if !sess.Remove(serial) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Serial not scanned in this session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "session": sessionView(sess)})
}

// BulkAllocate cấp phát hàng loạt cho một sản phẩm còn thiếu.
func (h *DispatchHandler) BulkAllocate(c *gin.Context) {
	sess, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": dispatch.ErrSessionNotFound.Error()})
		return
	}

	var req BulkAllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.BulkAllocate(context.Background(), sess, req.ProductName)
	if err != nil {
		respondDispatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("%d item(s) allocated", result.Added),
		"result":  result,
		"session": sessionView(sess),
	})
}

// Confirm xác nhận phiên: ghi ledger, tạo shipment, renewal và thông báo.
// Phiên bị hủy khỏi manager khi thành công.
func (h *DispatchHandler) Confirm(c *gin.Context) {
	sess, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": dispatch.ErrSessionNotFound.Error()})
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courier := dispatch.CourierInfo{Partner: req.CourierPartner, Mode: req.ShippingMode}
	result, err := h.Service.Finalize(context.Background(), sess, courier, c.GetString("user_email"))
	if err != nil {
		respondDispatchError(c, err)
		return
	}

	h.Sessions.Delete(sess.ID)

	// Đẩy thông báo hoàn tất cho các dashboard đang mở.
	if payload, err := json.Marshal(gin.H{"type": "dispatch.completed", "data": result}); err == nil {
		h.Hub.Broadcast(payload)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": result.Message, "result": result})
}

// CancelSession hủy phiên mà không ghi gì xuống storage.
func (h *DispatchHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("id")
	if _, ok := h.Sessions.Get(sessionID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": dispatch.ErrSessionNotFound.Error()})
		return
	}
	h.Sessions.Delete(sessionID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Session cancelled"})
}

// DeleteDispatch hoàn tác một dispatch đã xác nhận (chỉ admin/superadmin).
// Renewal của đơn được giữ nguyên có chủ đích.
func (h *DispatchHandler) DeleteDispatch(c *gin.Context) {
	orderID := c.Param("id")

	result, err := h.Service.Reverse(context.Background(), orderID)
	if err != nil {
		respondDispatchError(c, err)
		return
	}

	if result.ItemsReturned == 0 && result.ShipmentsDeleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No dispatched items or shipments found for this order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"message": fmt.Sprintf("%d item(s) returned to stock, %d shipment(s) deleted",
			result.ItemsReturned, result.ShipmentsDeleted),
		"result": result,
	})
}

// UploadProof upload ảnh biên nhận courier cho dispatch của một đơn hàng.
func (h *DispatchHandler) UploadProof(c *gin.Context) {
	orderID := c.Param("id")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectKey := fmt.Sprintf("dispatch-proofs/%s/%s", orderID, uuid.New().String())
	url, err := h.S3Uploader.UploadFile(context.Background(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload proof photo", "details": err.Error()})
		return
	}

	// Gắn URL ảnh vào shipment mới nhất của đơn.
	collection := h.DB.Collection("shipments")
	result, err := collection.UpdateOne(context.Background(),
		bson.M{"orderID": orderID},
		bson.M{"$set": bson.M{"proofURL": url, "proofUploadedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach proof to shipment"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shipment found for this order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "proofURL": url})
}

func sessionView(sess *dispatch.Session) gin.H {
	return gin.H{
		"sessionID":    sess.ID,
		"orderID":      sess.OrderID,
		"customerCode": sess.CustomerCode,
		"customerName": sess.CustomerName,
		"lines":        sess.Lines(),
		"scannedItems": sess.ScannedItems(),
		"complete":     sess.Complete(),
	}
}

// respondDispatchError ánh xạ lỗi nghiệp vụ sang HTTP status.
func respondDispatchError(c *gin.Context, err error) {
	var stepErr *dispatch.StepError
	if errors.As(err, &stepErr) {
		// Một phần đã commit không được rollback; báo rõ cho người dùng.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     stepErr.Error(),
			"step":      stepErr.Step,
			"committed": stepErr.Committed,
		})
		return
	}

	switch {
	case errors.Is(err, dispatch.ErrEmptySerial),
		errors.Is(err, dispatch.ErrProductNotInOrder),
		errors.Is(err, dispatch.ErrSessionIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dispatch.ErrSerialNotFound),
		errors.Is(err, dispatch.ErrOrderNotFound),
		errors.Is(err, dispatch.ErrSessionNotFound),
		errors.Is(err, dispatch.ErrNoAvailableStock):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, dispatch.ErrAlreadyScanned),
		errors.Is(err, dispatch.ErrAlreadyDispatched),
		errors.Is(err, dispatch.ErrLineSatisfied),
		errors.Is(err, dispatch.ErrAllCandidatesScanned),
		errors.Is(err, dispatch.ErrOrderDispatched),
		errors.Is(err, dispatch.ErrSerialConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
