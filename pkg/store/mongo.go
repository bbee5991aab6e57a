package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "railway"
	DefaultMongoCollection = "materials"
	mongoConnectTimeout    = 10 * time.Second
)

// MongoConfig locates the materials collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore reads records from a MongoDB collection keyed by "materialId".
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects and pings the server.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}
	return NewMongoStoreFromClient(client, cfg.Database, cfg.Collection), nil
}

// NewMongoStoreFromClient wraps an existing client.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// Get finds the document whose materialId equals materialID.
func (s *MongoStore) Get(ctx context.Context, materialID string) (*material.Record, error) {
	if err := errors.ValidateMaterialID(materialID); err != nil {
		return nil, err
	}
	var rec material.Record
	err := s.coll.FindOne(ctx, bson.M{"materialId": materialID}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(materialID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "find material %q", materialID)
	}
	return &rec, nil
}

// List returns up to limit documents sorted by materialId.
func (s *MongoStore) List(ctx context.Context, limit int) ([]material.Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "materialId", Value: 1}}).
		SetLimit(int64(listLimit(limit)))
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list materials")
	}
	var out []material.Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode materials")
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
