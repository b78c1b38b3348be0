package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"portfolio-tracker/internal/config"
)

// MongoDB wraps the driver client and the tracker database.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoDB connects, pings and ensures collection indexes.
func NewMongoDB(cfg config.DatabaseConfig) (*MongoDB, error) {
	clientOpts := options.Client().ApplyURI(cfg.URI)

	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(uint64(cfg.MaxPoolSize))
	}
	if cfg.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(uint64(cfg.MinPoolSize))
	}
	if cfg.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(cfg.Database)

	if err := createIndexes(ctx, database); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &MongoDB{
		client:   client,
		database: database,
	}, nil
}

// GetDatabase returns the database instance.
func (m *MongoDB) GetDatabase() *mongo.Database {
	return m.database
}

// Ping checks the database connection.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the database connection.
func (m *MongoDB) Disconnect() error {
	if m.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return m.client.Disconnect(ctx)
}

func createIndexes(ctx context.Context, db *mongo.Database) error {
	portfolioIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "assets.symbol", Value: 1}}},
	}
	if _, err := db.Collection("portfolios").Indexes().CreateMany(ctx, portfolioIndexes); err != nil {
		return fmt.Errorf("failed to create portfolio indexes: %w", err)
	}

	transactionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "executedAt", Value: -1}}},
		{Keys: bson.D{{Key: "portfolio", Value: 1}, {Key: "executedAt", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "symbol", Value: 1}}},
	}
	if _, err := db.Collection("transactions").Indexes().CreateMany(ctx, transactionIndexes); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	alertIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "symbol", Value: 1}, {Key: "isActive", Value: 1}}},
	}
	if _, err := db.Collection("alerts").Indexes().CreateMany(ctx, alertIndexes); err != nil {
		return fmt.Errorf("failed to create alert indexes: %w", err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	return nil
}
