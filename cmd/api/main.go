// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"tradeops-api-server/config"
	"tradeops-api-server/internal/api/routes"
	"tradeops-api-server/internal/auth"
	"tradeops-api-server/internal/database"
	"tradeops-api-server/internal/dispatch"
	"tradeops-api-server/internal/notify"
	"tradeops-api-server/internal/s3"
	"tradeops-api-server/internal/socket"
	"tradeops-api-server/internal/store"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	// 1. Load configuration (.env cho local, env vars cho deploy)
	godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	auth.SetSecret(cfg.JWT.Secret)

	// 2. Kết nối MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	db := client.Database(cfg.Mongo.DBName)

	// 3. Seed tài khoản superadmin
	if err := database.SeedSuperAdmin(db); err != nil {
		log.Fatalf("Failed to seed super admin: %v", err)
	}

	// 4. Khởi tạo S3 uploader (ảnh biên nhận courier)
	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to create S3 uploader: %v", err)
	}

	// 5. WebSocket hub và Kafka producer
	wsHub := socket.NewHub()

	var events dispatch.EventPublisher
	if cfg.Kafka.Broker != "" {
		producer := notify.NewEventProducer(cfg.Kafka.Broker, cfg.Kafka.Topic)
		defer producer.Close()
		events = producer
	}

	// 6. Lắp dispatch service với các store Mongo
	dispatchService := &dispatch.Service{
		Ledger:    &store.MongoLedger{DB: db},
		Orders:    &store.MongoOrderStore{DB: db},
		Catalog:   &store.MongoCatalogStore{DB: db},
		Shipments: &store.MongoShipmentStore{DB: db},
		Renewals:  &store.MongoRenewalStore{DB: db},
		Notifier:  notify.NewWebhook(cfg.N8N.DispatchWebhookURL),
		Events:    events,
	}

	sessionTTL := time.Duration(cfg.Dispatch.SessionTTLMinutes) * time.Minute
	if sessionTTL <= 0 {
		sessionTTL = 2 * time.Hour
	}
	sessions := dispatch.NewSessionManager(sessionTTL)
	go sessions.RunJanitor(10 * time.Minute)

	// 7. Truyền tất cả các thành phần cần thiết vào router
	router := routes.SetupRouter(cfg, db, dispatchService, sessions, s3Uploader, wsHub)

	// 8. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
