package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type transactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a Mongo-backed transaction repository over
// the "transactions" collection.
func NewTransactionRepository(db *mongo.Database) repositories.TransactionRepository {
	return &transactionRepository{
		collection: db.Collection("transactions"),
	}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	result, err := r.collection.InsertOne(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	tx.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*models.Transaction, error) {
	filter := bson.M{"_id": id, "user": userID}

	var tx models.Transaction
	err := r.collection.FindOne(ctx, filter).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, userID primitive.ObjectID, filter repositories.TransactionFilter) ([]*models.Transaction, int64, error) {
	query := bson.M{"user": userID}
	if !filter.Portfolio.IsZero() {
		query["portfolio"] = filter.Portfolio
	}
	if filter.Symbol != "" {
		query["symbol"] = strings.ToUpper(filter.Symbol)
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"executedAt": -1}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	transactions := []*models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return transactions, total, nil
}

func (r *transactionRepository) ListRecent(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.Transaction, error) {
	if limit < 1 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.M{"executedAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	defer cursor.Close(ctx)

	transactions := []*models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return transactions, nil
}
