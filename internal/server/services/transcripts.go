package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/common"
	"github.com/dmitrijs2005/supportchat/internal/logging"
	"github.com/dmitrijs2005/supportchat/internal/server/models"
	"github.com/google/uuid"
)

const transcriptURLTTL = 15 * time.Minute

// TranscriptStore is the object storage a transcript is uploaded to.
type TranscriptStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Transcript is the JSON document written for an export.
type Transcript struct {
	UserID     string                `json:"userId"`
	ExportedAt time.Time             `json:"exportedAt"`
	Messages   []*models.ChatMessage `json:"messages"`
}

// TranscriptExport locates an uploaded transcript.
type TranscriptExport struct {
	Key string
	URL string
}

type TranscriptService struct {
	log    *MessageLog
	store  TranscriptStore
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

// NewTranscriptService builds the service; a nil store disables exports.
func NewTranscriptService(log *MessageLog, store TranscriptStore, l logging.Logger) *TranscriptService {
	return &TranscriptService{
		log:    log,
		store:  store,
		logger: l.With("module", "transcripts"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Export uploads the full history of userID and returns its key together
// with a presigned download URL valid for 15 minutes.
func (s *TranscriptService) Export(ctx context.Context, userID string) (*TranscriptExport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("transcript export: %w", common.ErrNotConfigured)
	}
	if userID == "" {
		return nil, common.ValidationError("UserId is required to export a transcript.")
	}

	msgs, err := s.log.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(Transcript{
		UserID:     userID,
		ExportedAt: s.now().UTC(),
		Messages:   msgs,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode transcript: %w", err)
	}

	key := fmt.Sprintf("transcripts/%s/%s.json", url.PathEscape(userID), s.newID())

	if err := s.store.PutObject(ctx, key, body, "application/json"); err != nil {
		return nil, err
	}

	link, err := s.store.PresignGet(ctx, key, transcriptURLTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "transcript exported", "user_id", userID, "key", key, "messages", len(msgs))

	return &TranscriptExport{Key: key, URL: link}, nil
}
