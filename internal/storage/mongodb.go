package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jcchang/vision_scan_api/configs"
	"github.com/jcchang/vision_scan_api/internal/analysis"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scanCollection = "scan_records"

var mongoClient *mongo.Client
var mongoDB *mongo.Database

// InitMongoDB initializes MongoDB connection
func InitMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(configs.MONGO_URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	mongoClient = client
	mongoDB = client.Database(configs.MONGO_DB_NAME)

	log.Println("✅ Connected to MongoDB successfully!")
	return nil
}

// GetMongoDB returns the MongoDB database instance
func GetMongoDB() *mongo.Database {
	return mongoDB
}

// CloseMongoDB closes MongoDB connection
func CloseMongoDB() {
	if mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
		log.Println("MongoDB connection closed")
	}
}

// ScanRecord is one stored analysis request. Records are insert-only: the
// raw payload is persisted verbatim and summaries are always re-derived from
// it on read, never stored.
type ScanRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Mode      analysis.Mode      `bson:"mode" json:"mode"`
	ImagePath string             `bson:"image_path" json:"image_path"`
	Payload   analysis.Payload   `bson:"payload" json:"payload"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// MongoStore provides access to the scan history collection.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a store backed by the initialized database.
func NewMongoStore() *MongoStore {
	return &MongoStore{db: mongoDB}
}

// InsertScanRecord appends a new record and returns it with the generated ID.
func (s *MongoStore) InsertScanRecord(record ScanRecord) (ScanRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := s.db.Collection(scanCollection).InsertOne(ctx, record)
	if err != nil {
		return ScanRecord{}, fmt.Errorf("failed to insert scan record: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}
	return record, nil
}

// ListScanRecords returns all records in descending creation order.
func (s *MongoStore) ListScanRecords() ([]ScanRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(scanCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []ScanRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode scan records: %w", err)
	}
	return records, nil
}
