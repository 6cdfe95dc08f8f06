package seed

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kredibel/credit-scoring/internal/core/domain"
	"github.com/kredibel/credit-scoring/internal/core/ports"
)

// Seeder populates the data store with generated dummy data for
// demonstration and testing. It writes straight to the collections: seeding
// is bulk plumbing, not a use case the core exposes.
type Seeder struct {
	db      *mongo.Database
	txnRepo ports.TransactionRepository
	rng     *rand.Rand
	log     zerolog.Logger
}

// NewSeeder builds a Seeder whose randomness is safe to draw from concurrent
// requests. One instance serves both the admin reseed and the per-client
// random-transaction endpoint.
func NewSeeder(db *mongo.Database, txnRepo ports.TransactionRepository, seedVal int64, log zerolog.Logger) *Seeder {
	return &Seeder{db: db, txnRepo: txnRepo, rng: rand.New(newLockedSource(seedVal)), log: log}
}

// lockedSource serializes access to the underlying rand source. *rand.Rand is
// not goroutine-safe on its own; all draws used here (Intn, Int63n) reduce to
// source reads, so locking the source is sufficient.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func newLockedSource(seedVal int64) *lockedSource {
	return &lockedSource{src: rand.NewSource(seedVal).(rand.Source64)}
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seedVal int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seedVal)
}

// Reseed wipes all portfolio collections and writes a freshly generated
// dataset. Returns the number of clients and transactions created.
func (s *Seeder) Reseed(ctx context.Context) (clients, transactions int, err error) {
	dataset := Generate(s.rng, time.Now().UTC())

	collections := []string{
		"account_transaction_attributes",
		"financial_transaction_attributes",
		"transactions",
		"financial_products",
		"companies",
		"clients",
	}
	for _, name := range collections {
		if _, err := s.db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return 0, 0, fmt.Errorf("clear %s: %w", name, err)
		}
	}

	if err := insertAll(ctx, s.db.Collection("companies"), dataset.Companies); err != nil {
		return 0, 0, fmt.Errorf("seed companies: %w", err)
	}
	if err := insertAll(ctx, s.db.Collection("financial_products"), dataset.Products); err != nil {
		return 0, 0, fmt.Errorf("seed products: %w", err)
	}
	if err := insertAll(ctx, s.db.Collection("clients"), dataset.Clients); err != nil {
		return 0, 0, fmt.Errorf("seed clients: %w", err)
	}

	for _, at := range dataset.Transactions {
		txn := at.Txn
		if err := s.txnRepo.Create(ctx, &txn, at.RefID); err != nil {
			return 0, 0, fmt.Errorf("seed transaction: %w", err)
		}
	}

	s.log.Info().
		Int("clients", len(dataset.Clients)).
		Int("transactions", len(dataset.Transactions)).
		Msg("dummy dataset seeded")

	return len(dataset.Clients), len(dataset.Transactions), nil
}

// AddRandomTransaction synthesizes a single random transaction for the
// client: an account event against a bank or digital payment company, or a
// financial event against a random product.
func (s *Seeder) AddRandomTransaction(ctx context.Context, clientID string) (*domain.Transaction, error) {
	now := time.Now().UTC()

	if s.rng.Intn(2) == 0 {
		companies, err := s.accountCompanies(ctx)
		if err != nil {
			return nil, err
		}
		at := randomAccountTransaction(s.rng, clientID, companies, now)
		if err := s.txnRepo.Create(ctx, &at.Txn, at.RefID); err != nil {
			return nil, fmt.Errorf("add random transaction: %w", err)
		}
		return &at.Txn, nil
	}

	products, err := s.financialProducts(ctx)
	if err != nil {
		return nil, err
	}
	at := randomFinancialTransaction(s.rng, clientID, products, now)
	if err := s.txnRepo.Create(ctx, &at.Txn, at.RefID); err != nil {
		return nil, fmt.Errorf("add random transaction: %w", err)
	}
	return &at.Txn, nil
}

// accountCompanies lists companies that can originate account transactions
// (banks and digital payment providers only).
func (s *Seeder) accountCompanies(ctx context.Context) ([]domain.Company, error) {
	cursor, err := s.db.Collection("companies").Find(ctx, bson.M{
		"type": bson.M{"$in": []domain.CompanyType{domain.CompanyBank, domain.CompanyDigitalPayment}},
	})
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer cursor.Close(ctx)

	var companies []domain.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	if len(companies) == 0 {
		return nil, fmt.Errorf("no companies seeded yet")
	}
	return companies, nil
}

func (s *Seeder) financialProducts(ctx context.Context) ([]domain.FinancialProduct, error) {
	cursor, err := s.db.Collection("financial_products").Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.FinancialProduct
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no financial products seeded yet")
	}
	return products, nil
}

func insertAll[T any](ctx context.Context, col *mongo.Collection, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	payload := make([]interface{}, len(docs))
	for i, d := range docs {
		payload[i] = d
	}
	_, err := col.InsertMany(ctx, payload)
	return err
}
