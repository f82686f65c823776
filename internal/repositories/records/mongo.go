package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dsmelov/passvault/internal/common"
	"github.com/dsmelov/passvault/internal/models"
)

// MongoRepository stores secret records as documents in a MongoDB
// collection, one document per record with a store-generated ObjectID.
type MongoRepository struct {
	cli  *mongo.Client
	coll *mongo.Collection
}

type recordDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Owner      string             `bson:"owner"`
	Label      string             `bson:"label"`
	Ciphertext string             `bson:"ciphertext"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

// NewMongoRepository connects to MongoDB using the given connection string
// and validates the connection with a ping. An unreachable server yields
// common.ErrorStoreUnavailable; callers treat that as fatal at startup.
func NewMongoRepository(ctx context.Context, uri, database, collection string, timeout time.Duration) (*MongoRepository, error) {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cli, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: mongo connect: %v", common.ErrorStoreUnavailable, err)
	}
	if err := cli.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: mongo ping: %v", common.ErrorStoreUnavailable, err)
	}

	coll := cli.Database(database).Collection(collection)

	// Owner lookups back every list operation.
	_, _ = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})

	return &MongoRepository{cli: cli, coll: coll}, nil
}

func (r *MongoRepository) Create(ctx context.Context, owner, label, ciphertext string) (string, error) {
	now := time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, recordDoc{
		Owner:      owner,
		Label:      label,
		Ciphertext: ciphertext,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return "", storeErr(err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *MongoRepository) ListByOwner(ctx context.Context, owner string) ([]models.SecretRecord, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, storeErr(err)
	}
	defer cur.Close(ctx)

	out := []models.SecretRecord{}
	for cur.Next(ctx) {
		var doc recordDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, storeErr(err)
		}
		out = append(out, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.SecretRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	var doc recordDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, storeErr(err)
	}

	record := doc.toModel()
	return &record, nil
}

func (r *MongoRepository) Update(ctx context.Context, id, label, ciphertext string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"label":      label,
		"ciphertext": ciphertext,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return false, storeErr(err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, storeErr(err)
	}
	return res.DeletedCount > 0, nil
}

// Close disconnects the underlying client.
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.cli.Disconnect(ctx)
}

func (d recordDoc) toModel() models.SecretRecord {
	return models.SecretRecord{
		ID:         d.ID.Hex(),
		Owner:      d.Owner,
		Label:      d.Label,
		Ciphertext: d.Ciphertext,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
}
