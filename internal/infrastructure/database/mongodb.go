package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/johnquangdev/telehealth-assistant/pkg/config"
)

// Collection names used by the document store backend
const (
	CollectionAppointments = "appointments"
	CollectionSymptoms     = "symptom_reports"
	CollectionAlerts       = "emergency_alerts"
	CollectionSummaries    = "call_summaries"
)

// NewMongoDB connects to MongoDB, pings it and ensures indexes
func NewMongoDB(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize)).
		SetMinPoolSize(uint64(cfg.MinPoolSize)).
		SetMaxConnIdleTime(cfg.MaxIdleTime)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Printf("✅ Connected to MongoDB database: %s", cfg.Database)
	return client, db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionAppointments: {
			{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "appointment_time", Value: 1}}},
			{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "appointment_time", Value: 1}}},
			{Keys: bson.D{{Key: "channel_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionSymptoms: {
			{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		CollectionAlerts: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		CollectionSummaries: {
			{Keys: bson.D{{Key: "appointment_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("collection %s: %w", name, err)
		}
	}
	return nil
}

// CloseMongoDB disconnects the client
func CloseMongoDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	log.Println("✅ MongoDB connection closed")
	return nil
}
