package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
)

// ErrNotFound is returned when a document does not exist or is not owned by
// the requesting user. Controllers map it to 404.
var ErrNotFound = errors.New("not found")

// TransactionFilter narrows transaction listings. Zero values mean "no
// filter". Page is 1-based.
type TransactionFilter struct {
	Portfolio primitive.ObjectID
	Symbol    string
	Type      models.TransactionType
	Page      int
	Limit     int
}

// AlertFilter narrows alert listings. IsActive/IsTriggered are tri-state:
// nil means "no filter".
type AlertFilter struct {
	IsActive    *bool
	IsTriggered *bool
}

// PortfolioRepository stores portfolio documents. All reads and writes are
// owner-scoped.
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *models.Portfolio) error
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*models.Portfolio, error)
	ListActive(ctx context.Context, userID primitive.ObjectID) ([]*models.Portfolio, error)
	Update(ctx context.Context, portfolio *models.Portfolio) error
	SoftDelete(ctx context.Context, id, userID primitive.ObjectID) error
}

// TransactionRepository stores immutable trade records. There is no update
// or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*models.Transaction, error)
	List(ctx context.Context, userID primitive.ObjectID, filter TransactionFilter) ([]*models.Transaction, int64, error)
	ListRecent(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.Transaction, error)
}

// AlertRepository stores alert records.
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*models.Alert, error)
	List(ctx context.Context, userID primitive.ObjectID, filter AlertFilter) ([]*models.Alert, error)
	Update(ctx context.Context, alert *models.Alert) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// UserRepository stores accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}
