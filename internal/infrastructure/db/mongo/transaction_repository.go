package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kredibel/credit-scoring/internal/core/domain"
)

const (
	collectionTransactions   = "transactions"
	collectionAccountAttrs   = "account_transaction_attributes"
	collectionFinancialAttrs = "financial_transaction_attributes"
)

type TransactionRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{db: db, col: db.Collection(collectionTransactions)}
}

// joinedTransaction is the shape produced by the aggregation pipeline below:
// the base transaction plus the unwound attribute lookups.
type joinedTransaction struct {
	ID        string                     `bson:"_id"`
	ClientID  string                     `bson:"client_id"`
	Amount    int64                      `bson:"amount"`
	Category  domain.TransactionCategory `bson:"category"`
	CreatedAt time.Time                  `bson:"created_at"`
	Account   *struct {
		Type string `bson:"type"`
	} `bson:"account_attr"`
	Financial *struct {
		Type string `bson:"type"`
	} `bson:"financial_attr"`
}

// ListByClient returns the client's transactions newest first, left-joined
// with both attribute side-tables. A transaction without a matching attribute
// row comes back with empty sub-types, which downstream display tolerates.
func (r *TransactionRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"client_id": clientID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionAccountAttrs,
			"localField":   "_id",
			"foreignField": "transaction_id",
			"as":           "account_attr",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionFinancialAttrs,
			"localField":   "_id",
			"foreignField": "transaction_id",
			"as":           "financial_attr",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$account_attr", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$unwind", Value: bson.M{"path": "$financial_attr", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []joinedTransaction
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	transactions := make([]domain.Transaction, len(rows))
	for i, row := range rows {
		t := domain.Transaction{
			ID:        row.ID,
			ClientID:  row.ClientID,
			Amount:    row.Amount,
			Category:  row.Category,
			CreatedAt: row.CreatedAt,
		}
		if row.Account != nil {
			t.AccountType = row.Account.Type
		}
		if row.Financial != nil {
			t.FinancialType = row.Financial.Type
		}
		transactions[i] = t
	}
	return transactions, nil
}

// Create inserts the transaction and its category-dependent attribute row.
// refID points at the originating company (Account) or financial product
// (Financial).
func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction, refID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	switch txn.Category {
	case domain.CategoryAccount:
		attr := bson.M{
			"transaction_id": txn.ID,
			"company_id":     refID,
			"type":           txn.AccountType,
		}
		if _, err := r.db.Collection(collectionAccountAttrs).InsertOne(ctx, attr); err != nil {
			return fmt.Errorf("insert account attribute: %w", err)
		}
	case domain.CategoryFinancial:
		attr := bson.M{
			"transaction_id":       txn.ID,
			"financial_product_id": refID,
			"type":                 txn.FinancialType,
		}
		if _, err := r.db.Collection(collectionFinancialAttrs).InsertOne(ctx, attr); err != nil {
			return fmt.Errorf("insert financial attribute: %w", err)
		}
	default:
		return domain.ErrInvalidCategory
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the transaction collections.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return err
	}

	attrIndex := []mongo.IndexModel{
		{Keys: bson.D{{Key: "transaction_id", Value: 1}}},
	}
	if _, err := r.db.Collection(collectionAccountAttrs).Indexes().CreateMany(ctx, attrIndex); err != nil {
		return err
	}
	_, err := r.db.Collection(collectionFinancialAttrs).Indexes().CreateMany(ctx, attrIndex)
	return err
}
