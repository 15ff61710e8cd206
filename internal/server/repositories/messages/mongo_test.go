package messages

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func newMongoRepo(t *testing.T) *MongoRepository {
	t.Helper()
	uri := os.Getenv("SUPPORTCHAT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SUPPORTCHAT_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("supportchat_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	repo := NewMongoRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))
	return repo
}

func TestMongoRepository_AppendAndList(t *testing.T) {
	repo := newMongoRepo(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Create(ctx, &models.ChatMessage{ID: "m-2", UserID: "a", Sender: models.SenderBot, Text: "hello", Timestamp: base.Add(time.Second)}))
	require.NoError(t, repo.Create(ctx, &models.ChatMessage{ID: "m-1", UserID: "a", Sender: models.SenderUser, Text: "hi", Timestamp: base}))
	require.NoError(t, repo.Create(ctx, &models.ChatMessage{ID: "m-3", UserID: "b", Sender: models.SenderUser, Text: "yo", Timestamp: base}))

	got, err := repo.ListByUser(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m-1", got[0].ID)
	assert.Equal(t, models.SenderBot, got[1].Sender)

	all, err := repo.ListByUser(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMongoMessage_DocumentCarriesSeq(t *testing.T) {
	ts := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	msg := models.ChatMessage{ID: "m-1", UserID: "a", Sender: models.SenderUser, Text: "hi", Timestamp: ts}

	raw, err := bson.Marshal(mongoMessage{ChatMessage: msg, Seq: 7})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "m-1", doc["_id"])
	assert.Equal(t, "a", doc["userId"])
	assert.Equal(t, int64(7), doc["seq"])

	var back models.ChatMessage
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, msg, back)

	assert.Equal(t, bson.D{{Key: "timestamp", Value: 1}, {Key: "seq", Value: 1}}, listSort)
}

func TestMongoRepository_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	repo := newMongoRepo(t)
	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Millisecond)

	// ids sort opposite to insertion order
	require.NoError(t, repo.Create(ctx, &models.ChatMessage{ID: "z-user", UserID: "a", Sender: models.SenderUser, Text: "hi", Timestamp: ts}))
	require.NoError(t, repo.Create(ctx, &models.ChatMessage{ID: "a-bot", UserID: "a", Sender: models.SenderBot, Text: "Error: quota", Timestamp: ts}))

	got, err := repo.ListByUser(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "z-user", got[0].ID)
	assert.Equal(t, "a-bot", got[1].ID)
}
