package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

// Pagination describes one page of a transaction listing.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int64 `json:"pages"`
	Total   int64 `json:"total"`
}

// TransactionService reads the immutable trade history. There are no write
// operations here: transactions are only ever created as a side effect of
// portfolio mutations.
type TransactionService struct {
	transactionRepo repositories.TransactionRepository
}

// NewTransactionService creates the transaction service.
func NewTransactionService(transactionRepo repositories.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// List returns one page of the owner's history, newest executed first.
func (s *TransactionService) List(ctx context.Context, userID primitive.ObjectID, filter repositories.TransactionFilter) ([]*models.Transaction, *Pagination, error) {
	transactions, total, err := s.transactionRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return transactions, &Pagination{Current: page, Pages: pages, Total: total}, nil
}

// Get returns one owner-scoped transaction.
func (s *TransactionService) Get(ctx context.Context, userID, transactionID primitive.ObjectID) (*models.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, transactionID, userID)
}
