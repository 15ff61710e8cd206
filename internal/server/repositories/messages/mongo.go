package messages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/supportchat/internal/server/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	// Collection is the MongoDB collection holding chat messages.
	Collection = "chatmessages"

	// CountersCollection holds the insertion sequence of Collection.
	CountersCollection = "counters"
)

// mongoMessage is the stored document. Seq is a per-collection insertion
// counter; it orders messages whose millisecond timestamps are equal.
type mongoMessage struct {
	models.ChatMessage `bson:",inline"`
	Seq                int64 `bson:"seq"`
}

// listSort orders history by time, then by insertion.
var listSort = bson.D{{Key: "timestamp", Value: 1}, {Key: "seq", Value: 1}}

type MongoRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		coll:     db.Collection(Collection),
		counters: db.Collection(CountersCollection),
	}
}

// EnsureIndexes creates the (userId, timestamp, seq) index used by ListByUser.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: 1}, {Key: "seq", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	seq, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, mongoMessage{ChatMessage: *msg, Seq: seq}); err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	return nil
}

// nextSeq atomically increments the message counter and returns its new value.
func (r *MongoRepository) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := r.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: Collection}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("mongo error: %w", err)
	}

	return counter.Seq, nil
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]*models.ChatMessage, error) {
	filter := bson.D{}
	if userID != "" {
		filter = bson.D{{Key: "userId", Value: userID}}
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(listSort))
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	result := make([]*models.ChatMessage, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	return result, nil
}
