package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/common"
	"github.com/dmitrijs2005/supportchat/internal/logging"
	"github.com/dmitrijs2005/supportchat/internal/server/models"
	"github.com/dmitrijs2005/supportchat/internal/server/repositories/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriptStore struct {
	key         string
	body        []byte
	contentType string
	ttl         time.Duration
	putErr      error
	presignErr  error
}

func (f *fakeTranscriptStore) PutObject(_ context.Context, key string, body []byte, ct string) error {
	f.key, f.body, f.contentType = key, body, ct
	return f.putErr
}

func (f *fakeTranscriptStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	f.ttl = ttl
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://s3.example/" + key + "?sig=1", nil
}

func TestExport_UploadsHistory(t *testing.T) {
	log := newMessageLog(messages.NewMemoryRepository())
	ctx := context.Background()
	_, err := log.Append(ctx, "alice-id", models.SenderUser, "hi")
	require.NoError(t, err)
	_, err = log.Append(ctx, "alice-id", models.SenderBot, "hello")
	require.NoError(t, err)

	store := &fakeTranscriptStore{}
	s := NewTranscriptService(log, store, logging.Nop())
	s.newID = sequence("export")

	got, err := s.Export(ctx, "alice-id")
	require.NoError(t, err)

	assert.Equal(t, "transcripts/alice-id/export-1.json", got.Key)
	assert.Equal(t, "https://s3.example/transcripts/alice-id/export-1.json?sig=1", got.URL)
	assert.Equal(t, "application/json", store.contentType)
	assert.Equal(t, 15*time.Minute, store.ttl)

	var tr Transcript
	require.NoError(t, json.Unmarshal(store.body, &tr))
	assert.Equal(t, "alice-id", tr.UserID)
	require.Len(t, tr.Messages, 2)
	assert.Equal(t, "hello", tr.Messages[1].Text)
}

func TestExport_Errors(t *testing.T) {
	ctx := context.Background()
	log := newMessageLog(messages.NewMemoryRepository())

	_, err := NewTranscriptService(log, nil, logging.Nop()).Export(ctx, "u")
	assert.ErrorIs(t, err, common.ErrNotConfigured)

	_, err = NewTranscriptService(log, &fakeTranscriptStore{}, logging.Nop()).Export(ctx, "")
	assert.ErrorIs(t, err, common.ErrValidation)

	boom := errors.New("bucket missing")
	_, err = NewTranscriptService(log, &fakeTranscriptStore{putErr: boom}, logging.Nop()).Export(ctx, "u")
	assert.ErrorIs(t, err, boom)

	_, err = NewTranscriptService(log, &fakeTranscriptStore{presignErr: boom}, logging.Nop()).Export(ctx, "u")
	assert.ErrorIs(t, err, boom)
}
