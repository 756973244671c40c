package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forgo/smartwords/internal/database"
	"github.com/forgo/smartwords/internal/model"
)

// SetCollection is the MongoDB collection holding set documents
const SetCollection = "sets"

// mongoSet is the BSON shape of a set document
type mongoSet struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Words       []model.WordDocument `bson:"words"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func (m mongoSet) document() model.SetDocument {
	return model.SetDocument{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Description: m.Description,
		Words:       m.Words,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

// MongoSetRepository handles set data access on MongoDB
type MongoSetRepository struct {
	db *database.MongoDB
}

// NewMongoSetRepository creates a set repository over the sets collection
func NewMongoSetRepository(db *database.MongoDB) *MongoSetRepository {
	return &MongoSetRepository{db: db}
}

// Find returns the stored set documents matching filter, oldest first
func (r *MongoSetRepository) Find(ctx context.Context, filter model.SetFilter) ([]model.SetDocument, error) {
	query := bson.M{}
	if filter.ID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.ID)
		if err != nil {
			return []model.SetDocument{}, nil
		}
		query["_id"] = oid
	}
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}

	ctx, cancel := r.db.WithOperationTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.db.Collection(SetCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	var stored []mongoSet
	if err := cursor.All(ctx, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	docs := make([]model.SetDocument, len(stored))
	for i, s := range stored {
		docs[i] = s.document()
	}
	return docs, nil
}

// Insert stores doc under a new ObjectID
func (r *MongoSetRepository) Insert(ctx context.Context, doc model.SetDocument) (model.SetDocument, error) {
	stored := mongoSet{
		ID:          primitive.NewObjectID(),
		Name:        doc.Name,
		Description: doc.Description,
		Words: assignWordIDs(doc.Words, func() string {
			return primitive.NewObjectID().Hex()
		}),
		// BSON dates keep millisecond precision
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	ctx, cancel := r.db.WithOperationTimeout(ctx)
	defer cancel()

	if _, err := r.db.Collection(SetCollection).InsertOne(ctx, stored); err != nil {
		return model.SetDocument{}, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return stored.document(), nil
}

// Delete removes a set document, reporting whether one existed
func (r *MongoSetRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := r.db.WithOperationTimeout(ctx)
	defer cancel()

	res, err := r.db.Collection(SetCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return res.DeletedCount > 0, nil
}

// Ping checks the MongoDB connection
func (r *MongoSetRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close disconnects from MongoDB
func (r *MongoSetRepository) Close() error {
	return r.db.Close()
}

