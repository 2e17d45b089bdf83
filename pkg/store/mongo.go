package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/timohermans/rabo-overview/pkg/ledger"
)

const (
	// DefaultDatabase is the database used when MongoOptions.Database is empty.
	DefaultDatabase = "rabo"

	accountsCollection     = "accounts"
	transactionsCollection = "transactions"
)

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI      string // Connection string, e.g. mongodb://localhost:27017
	Database string // Database name (default: DefaultDatabase)
	Owner    string // Scopes every document; one owner per statement holder
}

// MongoStore is a Repository backed by MongoDB.
//
// Document IDs are version 7 UUIDs, which sort by creation time; "first
// match" lookups sort on _id. Amounts are stored as Decimal128.
type MongoStore struct {
	client       *mongo.Client
	owner        string
	accounts     *mongo.Collection
	transactions *mongo.Collection
	ownsClient   bool
}

type accountDoc struct {
	ID            string `bson:"_id"`
	User          string `bson:"user"`
	Name          string `bson:"name"`
	AccountNumber string `bson:"account_number"`
	IsUserOwner   bool   `bson:"is_user_owner"`
}

type transactionDoc struct {
	ID           string               `bson:"_id"`
	User         string               `bson:"user"`
	Date         time.Time            `bson:"date"`
	Amount       primitive.Decimal128 `bson:"amount"`
	Code         string               `bson:"code"`
	Currency     string               `bson:"currency"`
	Memo         string               `bson:"memo"`
	ReceiverID   string               `bson:"receiver_id"`
	OtherPartyID string               `bson:"other_party_id"`
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures
// the indexes exist.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}
	s, err := NewMongoStoreFromClient(ctx, client, opts.Database, opts.Owner)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	s.ownsClient = true
	return s, nil
}

// NewMongoStoreFromClient creates a store on an existing client. The
// client is not disconnected by Close.
func NewMongoStoreFromClient(ctx context.Context, client *mongo.Client, database, owner string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	db := client.Database(database)
	s := &MongoStore{
		client:       client,
		owner:        owner,
		accounts:     db.Collection(accountsCollection),
		transactions: db.Collection(transactionsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.transactions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create transaction indexes: %w", err)
	}
	_, err = s.accounts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "account_number", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}
	return nil
}

// TransactionExists implements Repository.
func (s *MongoStore) TransactionExists(ctx context.Context, code string) (bool, error) {
	n, err := s.transactions.CountDocuments(ctx, bson.M{"user": s.owner, "code": code}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count transactions: %w", err)
	}
	return n > 0, nil
}

// FindAccountByNumber implements Repository.
func (s *MongoStore) FindAccountByNumber(ctx context.Context, number string) (*ledger.Account, bool, error) {
	return s.findAccount(ctx, bson.M{"user": s.owner, "account_number": number})
}

// FindAccountByNumberOrName implements Repository.
func (s *MongoStore) FindAccountByNumberOrName(ctx context.Context, number, name string) (*ledger.Account, bool, error) {
	if number == "" {
		return s.findAccount(ctx, bson.M{"user": s.owner, "name": name})
	}
	return s.findAccount(ctx, bson.M{"user": s.owner, "account_number": number})
}

func (s *MongoStore) findAccount(ctx context.Context, filter bson.M) (*ledger.Account, bool, error) {
	var doc accountDoc
	err := s.accounts.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find account: %w", err)
	}
	return doc.toAccount(), true, nil
}

// MarkAsOwner implements Repository.
func (s *MongoStore) MarkAsOwner(ctx context.Context, account *ledger.Account) error {
	if account.ID == "" {
		return ErrAccountNotStored
	}
	if account.IsUserOwner {
		return nil
	}
	res, err := s.accounts.UpdateOne(ctx,
		bson.M{"_id": account.ID, "user": s.owner},
		bson.M{"$set": bson.M{"is_user_owner": true}},
	)
	if err != nil {
		return fmt.Errorf("update account %s: %w", account.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrAccountNotStored
	}
	account.IsUserOwner = true
	return nil
}

// CreateAccount implements Repository.
func (s *MongoStore) CreateAccount(ctx context.Context, account *ledger.Account) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}
	doc := accountDoc{
		ID:            id.String(),
		User:          s.owner,
		Name:          account.Name,
		AccountNumber: account.AccountNumber,
		IsUserOwner:   account.IsUserOwner,
	}
	if _, err := s.accounts.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	account.ID = doc.ID
	return nil
}

// CreateTransaction implements Repository.
func (s *MongoStore) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	if tx.Receiver == nil || tx.Receiver.ID == "" || tx.OtherParty == nil || tx.OtherParty.ID == "" {
		return ErrAccountNotStored
	}
	amount, err := primitive.ParseDecimal128(tx.Amount.String())
	if err != nil {
		return fmt.Errorf("encode amount %s: %w", tx.Amount, err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}
	doc := transactionDoc{
		ID:           id.String(),
		User:         s.owner,
		Date:         tx.Date.UTC(),
		Amount:       amount,
		Code:         tx.Code,
		Currency:     tx.Currency,
		Memo:         tx.Memo,
		ReceiverID:   tx.Receiver.ID,
		OtherPartyID: tx.OtherParty.ID,
	}
	if _, err := s.transactions.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	tx.ID = doc.ID
	return nil
}

// ListAccounts implements Repository.
func (s *MongoStore) ListAccounts(ctx context.Context) ([]*ledger.Account, error) {
	cursor, err := s.accounts.Find(ctx, bson.M{"user": s.owner}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	var docs []accountDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	accounts := make([]*ledger.Account, len(docs))
	for i, d := range docs {
		accounts[i] = d.toAccount()
	}
	return accounts, nil
}

// ListTransactions implements Repository. Each account is hydrated once
// and shared by all transactions referencing it.
func (s *MongoStore) ListTransactions(ctx context.Context, start, end time.Time) ([]*ledger.Transaction, error) {
	filter := bson.M{"user": s.owner}
	dateRange := bson.M{}
	if !start.IsZero() {
		dateRange["$gte"] = start.UTC()
	}
	if !end.IsZero() {
		dateRange["$lte"] = end.UTC()
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	cursor, err := s.transactions.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	var docs []transactionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*ledger.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	txs := make([]*ledger.Transaction, 0, len(docs))
	for _, d := range docs {
		amount, err := decimal.NewFromString(d.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("decode amount of %s: %w", d.Code, err)
		}
		receiver, ok := byID[d.ReceiverID]
		if !ok {
			return nil, fmt.Errorf("transaction %s: receiver %s: %w", d.Code, d.ReceiverID, ErrAccountNotStored)
		}
		other, ok := byID[d.OtherPartyID]
		if !ok {
			return nil, fmt.Errorf("transaction %s: other party %s: %w", d.Code, d.OtherPartyID, ErrAccountNotStored)
		}
		txs = append(txs, &ledger.Transaction{
			ID:         d.ID,
			Date:       d.Date,
			Amount:     amount,
			Code:       d.Code,
			Currency:   d.Currency,
			Memo:       d.Memo,
			Receiver:   receiver,
			OtherParty: other,
		})
	}
	return txs, nil
}

// Close disconnects the client if the store created it.
func (s *MongoStore) Close(ctx context.Context) error {
	if !s.ownsClient {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (d accountDoc) toAccount() *ledger.Account {
	return &ledger.Account{
		ID:            d.ID,
		Name:          d.Name,
		AccountNumber: d.AccountNumber,
		IsUserOwner:   d.IsUserOwner,
	}
}

// Ensure MongoStore implements Repository.
var _ Repository = (*MongoStore)(nil)
