// server/internal/api/routes/routes.go
package routes

import (
	"tradeops-api-server/config"
	"tradeops-api-server/internal/api/handlers"
	"tradeops-api-server/internal/api/middleware"
	"tradeops-api-server/internal/dispatch"
	"tradeops-api-server/internal/s3"
	"tradeops-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	dispatchService *dispatch.Service,
	sessions *dispatch.SessionManager,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	// Khởi tạo các handlers
	userHandler := &handlers.UserHandler{DB: db, Cfg: cfg}
	orderHandler := &handlers.OrderHandler{DB: db, Dispatch: dispatchService}
	inventoryHandler := &handlers.InventoryHandler{DB: db}
	renewalHandler := &handlers.RenewalHandler{DB: db}
	dispatchHandler := &handlers.DispatchHandler{
		Service:    dispatchService,
		Sessions:   sessions,
		Hub:        wsHub,
		S3Uploader: s3Uploader,
		DB:         db,
	}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		// Route cho WebSocket (token qua query string)
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === CÁC ROUTE KHÔNG YÊU CẦU XÁC THỰC ===
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// === CÁC ROUTE YÊU CẦU XÁC THỰC (PROTECTED) ===

		// Nhóm API quản trị, yêu cầu vai trò "superadmin"
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("superadmin"))
		{
			admin.POST("/users", userHandler.CreateUser)
		}

		// Nhóm các API nghiệp vụ chính, yêu cầu các vai trò cụ thể
		businessRoutes := apiV1.Group("/")
		businessRoutes.Use(middleware.Authenticate())
		businessRoutes.Use(middleware.Authorize("admin", "operator", "superadmin"))
		{
			// Sales orders
			orders := businessRoutes.Group("/orders")
			{
				orders.POST("/", orderHandler.CreateOrder)
				orders.GET("/", orderHandler.GetAllOrders)
				orders.GET("/:id", orderHandler.GetOrderByID)
				orders.GET("/:id/requirements", orderHandler.GetOrderRequirements)
				orders.GET("/:id/renewals", renewalHandler.GetRenewalsByOrder)
				orders.POST("/:id/dispatch-proof", dispatchHandler.UploadProof)

				// Hoàn tác dispatch: chỉ admin trở lên
				reversalRoutes := orders.Group("/")
				reversalRoutes.Use(middleware.Authorize("admin", "superadmin"))
				{
					reversalRoutes.DELETE("/:id/dispatch", dispatchHandler.DeleteDispatch)
				}
			}

			// Inventory
			inventory := businessRoutes.Group("/inventory")
			{
				inventory.POST("/intake", inventoryHandler.Intake)
				inventory.GET("/", inventoryHandler.GetAllItems)
				inventory.GET("/:serial", inventoryHandler.GetItemBySerial)
			}

			// Dispatch scan sessions
			dispatchSessions := businessRoutes.Group("/dispatch/sessions")
			{
				dispatchSessions.POST("/", dispatchHandler.OpenSession)
				dispatchSessions.GET("/:id", dispatchHandler.GetSession)
				dispatchSessions.POST("/:id/scan", dispatchHandler.Scan)
				dispatchSessions.DELETE("/:id/scan/:serial", dispatchHandler.Unscan)
				dispatchSessions.POST("/:id/bulk", dispatchHandler.BulkAllocate)
				dispatchSessions.POST("/:id/confirm", dispatchHandler.Confirm)
				dispatchSessions.DELETE("/:id", dispatchHandler.CancelSession)
			}

			// Renewals
			renewals := businessRoutes.Group("/renewals")
			{
				renewals.GET("/", renewalHandler.GetAllRenewals)
			}
		}
	}

	return router
}
