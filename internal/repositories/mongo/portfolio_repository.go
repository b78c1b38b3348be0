package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

type portfolioRepository struct {
	collection *mongo.Collection
}

// NewPortfolioRepository creates a Mongo-backed portfolio repository over
// the "portfolios" collection.
func NewPortfolioRepository(db *mongo.Database) repositories.PortfolioRepository {
	return &portfolioRepository{
		collection: db.Collection("portfolios"),
	}
}

func (r *portfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	if err := portfolio.Validate(); err != nil {
		return err
	}

	result, err := r.collection.InsertOne(ctx, portfolio)
	if err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}
	portfolio.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *portfolioRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*models.Portfolio, error) {
	filter := bson.M{"_id": id, "user": userID}

	var portfolio models.Portfolio
	err := r.collection.FindOne(ctx, filter).Decode(&portfolio)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return &portfolio, nil
}

func (r *portfolioRepository) ListActive(ctx context.Context, userID primitive.ObjectID) ([]*models.Portfolio, error) {
	filter := bson.M{"user": userID, "isActive": true}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer cursor.Close(ctx)

	portfolios := []*models.Portfolio{}
	if err := cursor.All(ctx, &portfolios); err != nil {
		return nil, fmt.Errorf("failed to decode portfolios: %w", err)
	}
	return portfolios, nil
}

func (r *portfolioRepository) Update(ctx context.Context, portfolio *models.Portfolio) error {
	if err := portfolio.Validate(); err != nil {
		return err
	}

	filter := bson.M{"_id": portfolio.ID, "user": portfolio.User}
	result, err := r.collection.ReplaceOne(ctx, filter, portfolio)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *portfolioRepository) SoftDelete(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "user": userID, "isActive": true}
	update := bson.M{"$set": bson.M{"isActive": false}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
