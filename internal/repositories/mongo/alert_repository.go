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

type alertRepository struct {
	collection *mongo.Collection
}

// NewAlertRepository creates a Mongo-backed alert repository over the
// "alerts" collection.
func NewAlertRepository(db *mongo.Database) repositories.AlertRepository {
	return &alertRepository{
		collection: db.Collection("alerts"),
	}
}

func (r *alertRepository) Create(ctx context.Context, alert *models.Alert) error {
	if err := alert.Validate(); err != nil {
		return err
	}

	result, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	alert.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *alertRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*models.Alert, error) {
	filter := bson.M{"_id": id, "user": userID}

	var alert models.Alert
	err := r.collection.FindOne(ctx, filter).Decode(&alert)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

func (r *alertRepository) List(ctx context.Context, userID primitive.ObjectID, filter repositories.AlertFilter) ([]*models.Alert, error) {
	query := bson.M{"user": userID}
	if filter.IsActive != nil {
		query["isActive"] = *filter.IsActive
	}
	if filter.IsTriggered != nil {
		query["isTriggered"] = *filter.IsTriggered
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer cursor.Close(ctx)

	alerts := []*models.Alert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) Update(ctx context.Context, alert *models.Alert) error {
	if err := alert.Validate(); err != nil {
		return err
	}

	filter := bson.M{"_id": alert.ID, "user": alert.User}
	result, err := r.collection.ReplaceOne(ctx, filter, alert)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *alertRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user": userID})
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
